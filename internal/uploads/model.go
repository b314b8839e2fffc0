package uploads

// File is the descriptor embedded into owning documents (for example a
// user's profilePhoto). Deleting the owner does not cascade to the blob.
type File struct {
	UID      string `firestore:"uid" json:"uid"`
	Name     string `firestore:"name" json:"name"`
	URL      string `firestore:"url" json:"url"`
	ThumbURL string `firestore:"thumbUrl,omitempty" json:"thumbUrl,omitempty"`
}
