package note

// KeyFunc derives the blob key for an attachment.
type KeyFunc func(noteID, filename string) string

// BlobKey returns notes/{noteID}/{filename}. The filename is used exactly as the
// client sent it, unescaped, so the layout stays compatible with existing
// buckets.
// TODO: add a sanitizing KeyFunc that strips path separators from filename.
func BlobKey(noteID, filename string) string {
	return "notes/" + noteID + "/" + filename
}
