package domain

// AppSettings is the single operator-managed configuration document. The
// Unsplash key lives here rather than in the environment so admins can rotate
// it without a deploy.
type AppSettings struct {
	UnsplashAccessKey string `json:"-" firestore:"unsplashAccessKey"`
}
