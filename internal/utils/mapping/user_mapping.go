package mapping

import (
	"github.com/SscSPs/finance_planner/internal/core/domain"
	"github.com/SscSPs/finance_planner/internal/models"
)

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:      m.UserID,
		ExternalID:  m.ExternalID,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
