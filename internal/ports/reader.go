package ports

// FileReader decodes a file to text, hiding encoding concerns from callers.
// A returned error means no attempt could read the file at all; callers treat
// it as "no content" and move on to the next file.
type FileReader interface {
	ReadText(path string) (string, error)
}
