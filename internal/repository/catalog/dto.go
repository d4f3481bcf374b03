package catalog

import (
	"strconv"

	"github.com/medialib/gallerybot/internal/domain/content"
)

// Metadata hash field names.
const (
	fieldFilePath    = "file_path"
	fieldTitle       = "title"
	fieldDescription = "description"
	fieldOriginName  = "origin_name"
	fieldOriginID    = "origin_id"
)

// recordFromFields hydrates a content record from its metadata hash. The
// origin is only considered present when both origin fields parse.
func recordFromFields(id int64, fields map[string]string) content.Record {
	originName := fields[fieldOriginName]
	originID, originErr := strconv.ParseInt(fields[fieldOriginID], 10, 64)
	hasOrigin := originName != "" && originErr == nil

	return content.Reconstruct(
		id,
		fields[fieldFilePath],
		fields[fieldTitle],
		fields[fieldDescription],
		originName,
		originID,
		hasOrigin,
	)
}
