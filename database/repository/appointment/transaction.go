package appointmentRepo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// WithTransaction runs fn inside a MongoDB session transaction. The session
// context is handed to fn so every repository call inside participates in the
// same transaction. Transient transaction failures surface as *TransientError
// so the caller can retry the whole unit.
func (repo *MongoAppointmentRepo) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	client := repo.liveColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnErr := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := fn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	})
	if txnErr == nil {
		return nil
	}
	var transient *TransientError
	if errors.As(txnErr, &transient) {
		return txnErr
	}
	if isTransientMongoErr(txnErr) {
		return &TransientError{Err: txnErr}
	}
	return txnErr
}

// wrapStoreErr annotates a store failure, preserving transient classification.
func wrapStoreErr(op string, err error) error {
	if isTransientMongoErr(err) {
		return &TransientError{Err: fmt.Errorf("%s: %w", op, err)}
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isTransientMongoErr(err error) bool {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.HasErrorLabel("TransientTransactionError") ||
			cmdErr.HasErrorLabel("UnknownTransactionCommitResult")
	}
	return errors.Is(err, context.DeadlineExceeded)
}
