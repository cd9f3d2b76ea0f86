package models

// Subject is the person an appointment belongs to. Only the fields the
// scheduling engine needs: display labeling and a push target.
type Subject struct {
	ID       string `bson:"id" json:"id"`
	Name     string `bson:"name" json:"name"`
	FCMToken string `bson:"fcm_token,omitempty" json:"-"`
}
