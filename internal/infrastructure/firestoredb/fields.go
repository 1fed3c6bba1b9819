package firestoredb

// Firestore field names used in queries and update calls across all repos.
// Using constants prevents silent runtime bugs caused by path typos.
const (
	fieldEnable           = "enable"
	fieldEmail            = "email"
	fieldGoogleSub        = "googleSub"
	fieldRole             = "role"
	fieldWeddingID        = "weddingId"
	fieldCreatedAt        = "createdAt"
	fieldUpdatedAt        = "updatedAt"
	fieldUserID           = "userId"
	fieldRefreshTokenHash = "refreshTokenHash"
	fieldRefreshExpiresAt = "refreshExpiresAt"
	fieldRead             = "read"
	fieldDeleted          = "deleted"
	fieldStatus           = "status"
	fieldInvitedAt        = "invitedAt"
	fieldClaimedByName    = "claimedByName"
	fieldClaimedAt        = "claimedAt"
	fieldThanked          = "thanked"
)
