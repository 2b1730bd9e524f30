package domain

// FileType represents the image types accepted for a scan.
type FileType string

const (
	FileTypeJPG  FileType = "jpg"
	FileTypePNG  FileType = "png"
	FileTypeWEBP FileType = "webp"
	FileTypeGIF  FileType = "gif"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypeJPG:  "image/jpeg",
	FileTypePNG:  "image/png",
	FileTypeWEBP: "image/webp",
	FileTypeGIF:  "image/gif",
}

// AllowedContentTypes maps MIME content types back to FileType.
var AllowedContentTypes = map[string]FileType{
	"image/jpeg": FileTypeJPG,
	"image/jpg":  FileTypeJPG,
	"image/png":  FileTypePNG,
	"image/webp": FileTypeWEBP,
	"image/gif":  FileTypeGIF,
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"jpg":  FileTypeJPG,
	"jpeg": FileTypeJPG,
	"png":  FileTypePNG,
	"webp": FileTypeWEBP,
	"gif":  FileTypeGIF,
}

// UserRole defines what a user may do.
type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

// ValidUserRoles lists all valid user roles.
var ValidUserRoles = map[UserRole]bool{
	RoleAdmin: true,
	RoleUser:  true,
}

// ItemSource records how a pantry item was added.
type ItemSource string

const (
	ItemSourceManual ItemSource = "manual"
	ItemSourceScan   ItemSource = "scan"
)

// ExportFormat is a pantry export file format.
type ExportFormat string

const (
	ExportFormatCSV  ExportFormat = "csv"
	ExportFormatXLSX ExportFormat = "xlsx"
)

// ParseExportFormat maps a query value to an ExportFormat. An empty value
// selects CSV.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch ExportFormat(s) {
	case "", ExportFormatCSV:
		return ExportFormatCSV, nil
	case ExportFormatXLSX:
		return ExportFormatXLSX, nil
	default:
		return "", ErrInvalidExportFormat
	}
}
