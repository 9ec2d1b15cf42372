package catalog

import (
	"strings"
	"unicode/utf8"

	"github.com/shopadmin/backend/internal/domain/shared"
)

const (
	maxCodeLength        = 50
	maxNameLength        = 100
	maxDescriptionLength = 2000
)

// normalizeCode validates a catalog code and returns it upper-cased
func normalizeCode(entity, code string) (string, error) {
	if code == "" {
		return "", shared.NewDomainError("INVALID_CODE", entity+" code cannot be empty")
	}
	if len(code) > maxCodeLength {
		return "", shared.NewDomainError("INVALID_CODE", entity+" code cannot exceed 50 characters")
	}
	for _, r := range code {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return "", shared.NewDomainError("INVALID_CODE", entity+" code can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return strings.ToUpper(code), nil
}

func validateName(entity, name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", entity+" name cannot be empty")
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return shared.NewDomainError("INVALID_NAME", entity+" name cannot exceed 100 characters")
	}
	return nil
}

func validateDescription(entity, description string) error {
	if utf8.RuneCountInString(description) > maxDescriptionLength {
		return shared.NewDomainError("INVALID_DESCRIPTION", entity+" description cannot exceed 2000 characters")
	}
	return nil
}
