package files

import "mime/multipart"

// UploadForm is the multipart body of an upload. Path is the JSON encoded
// destination directory and Stats the JSON encoded snapshot the file is stamped with.
type UploadForm struct {
	File      *multipart.FileHeader `form:"file" binding:"required"`
	Path      string                `form:"path" binding:"required"`
	Overwrite bool                  `form:"overwrite"`
	Stats     string                `form:"stats" binding:"required"`
}

const (
	msgUploaded = "File uploaded successfully!"
	msgDeleted  = "Files deleted successfully!"

	// name used when the upload carries no file name
	defaultUploadName = "unknown_file"
	// name used when the downloaded path has no basename
	defaultDownloadName = "downloaded_file"
)
