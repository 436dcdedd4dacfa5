// Package blob talks to the hosted blob store that serves activity photos.
package blob

// Uploader is the two-verb contract the activity lifecycle needs. Put returns
// the public URL of the stored object; Delete of a URL that no longer exists
// is not an error.
type Uploader interface {
	Put(key string, content []byte) (string, error)
	Delete(url string) error
}
