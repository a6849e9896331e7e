package models

// User is the subset of a users/{uid} document this backend reads.
// Other profile fields are owned by the mobile app.
type User struct {
	ID       string `json:"id" firestore:"-"` // Firebase Auth UID, will be the document ID
	FCMToken string `json:"fcmToken,omitempty" firestore:"fcmToken,omitempty"`
}
