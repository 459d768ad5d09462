package domain

// User is the local record for an identity issued by the external token issuer.
// Users are created lazily on the first authenticated request.
type User struct {
	UserID     string `json:"userID"`
	ExternalID string `json:"externalID"` // token "sub"; immutable and unique
	AuditFields
}
