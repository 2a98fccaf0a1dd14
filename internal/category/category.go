package category

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Category identifies a file-extension group.
type Category string

const (
	Documents Category = "documents"
	Video     Category = "video"
	Images    Category = "images"
	Audio     Category = "audio"
	Archives  Category = "archives"
	Code      Category = "code"
	Other     Category = "other"
)

var extensions = map[string]Category{
	// documents
	"txt": Documents, "doc": Documents, "docx": Documents, "odt": Documents,
	"pdf": Documents, "rtf": Documents, "md": Documents, "epub": Documents,
	"xls": Documents, "xlsx": Documents, "ods": Documents, "csv": Documents,
	"ppt": Documents, "pptx": Documents, "odp": Documents,

	// video
	"mkv": Video, "mp4": Video, "avi": Video, "mov": Video, "wmv": Video,
	"flv": Video, "webm": Video, "ogv": Video, "mpg": Video, "mpeg": Video,
	"m4v": Video, "3gp": Video, "f4v": Video, "vob": Video, "rm": Video,
	"rmvb": Video, "asf": Video, "mts": Video, "m2ts": Video, "ts": Video,

	// images
	"jpg": Images, "jpeg": Images, "png": Images, "gif": Images, "bmp": Images,
	"svg": Images, "tiff": Images, "tif": Images, "webp": Images, "heic": Images,
	"heif": Images, "ico": Images, "raw": Images,

	// audio
	"mp3": Audio, "flac": Audio, "wav": Audio, "aac": Audio, "ogg": Audio,
	"m4a": Audio, "wma": Audio, "opus": Audio, "aiff": Audio,

	// archives
	"zip": Archives, "rar": Archives, "7z": Archives, "tar": Archives,
	"gz": Archives, "bz2": Archives, "xz": Archives, "zst": Archives,
	"iso": Archives,

	// code (.ts stays with video transport streams above)
	"go": Code, "py": Code, "js": Code, "c": Code, "h": Code,
	"cpp": Code, "rs": Code, "java": Code, "rb": Code, "sh": Code,
	"html": Code, "css": Code, "json": Code, "yaml": Code, "yml": Code,
	"toml": Code, "sql": Code, "xml": Code,
}

var titleCaser = cases.Title(language.Und)

// ForName returns the category for a file name based on its extension.
// Files without an extension, or with an unknown one, land in Other.
func ForName(name string) Category {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	if ext == "" {
		return Other
	}
	if cat, ok := extensions[ext]; ok {
		return cat
	}
	return Other
}

// FolderName returns the destination directory name for a category.
func FolderName(cat Category) string {
	return titleCaser.String(string(cat))
}

// All lists every category in a stable order.
func All() []Category {
	return []Category{Documents, Video, Images, Audio, Archives, Code, Other}
}
