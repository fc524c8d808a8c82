package pending

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

const (
	recordLineTemplateConstant    = "[%s] %s %s @%s\n"
	referenceLinkTemplateConstant = "[#%s](https://github.com/%s/%s/%s)"
)

// FormatRecord renders one record as a changelog line including its trailing newline.
func FormatRecord(record ChangeRecord, repositorySlug string) string {
	return fmt.Sprintf(recordLineTemplateConstant, record.Type, referenceLink(record, repositorySlug), record.Content, record.Author)
}

// RenderSession renders every record in order and trims the surrounding whitespace of the result.
func RenderSession(session Session, repositorySlug string) string {
	lines := lo.Map(session.Records, func(record ChangeRecord, _ int) string {
		return FormatRecord(record, repositorySlug)
	})
	return strings.TrimSpace(strings.Join(lines, ""))
}

func referenceLink(record ChangeRecord, repositorySlug string) string {
	if record.ReferenceType == ReferenceTypeNone {
		return ""
	}
	return fmt.Sprintf(referenceLinkTemplateConstant, record.ReferenceID, repositorySlug, record.ReferenceType, record.ReferenceID)
}
