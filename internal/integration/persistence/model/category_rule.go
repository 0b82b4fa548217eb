package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/finsight/backend/internal/domain/entity"
)

// CategoryRuleModel represents the category_rules table in the database.
// Keywords use the PostgreSQL array type; on the SQLite fallback store the
// same column holds the array literal as text.
type CategoryRuleModel struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey"`
	OwnerID        uuid.UUID      `gorm:"type:uuid;not null;index"`
	Category       string         `gorm:"type:varchar(100);not null"`
	Keywords       pq.StringArray `gorm:"type:text[];not null"`
	BaseConfidence float64        `gorm:"type:decimal(3,2);not null"`
	Priority       int            `gorm:"default:0"`
	IsActive       bool           `gorm:"default:true;index"`
	CreatedAt      time.Time      `gorm:"not null"`
	UpdatedAt      time.Time      `gorm:"not null"`
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for the CategoryRuleModel.
func (CategoryRuleModel) TableName() string {
	return "category_rules"
}

// ToEntity converts a CategoryRuleModel to a domain CategoryRule entity.
func (m *CategoryRuleModel) ToEntity() *entity.CategoryRule {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	return &entity.CategoryRule{
		ID:             m.ID,
		OwnerID:        m.OwnerID,
		Category:       m.Category,
		Keywords:       m.Keywords,
		BaseConfidence: m.BaseConfidence,
		Priority:       m.Priority,
		IsActive:       m.IsActive,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
		DeletedAt:      deletedAt,
	}
}

// CategoryRuleFromEntity creates a CategoryRuleModel from a domain CategoryRule entity.
func CategoryRuleFromEntity(rule *entity.CategoryRule) *CategoryRuleModel {
	var deletedAt gorm.DeletedAt
	if rule.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *rule.DeletedAt, Valid: true}
	}

	return &CategoryRuleModel{
		ID:             rule.ID,
		OwnerID:        rule.OwnerID,
		Category:       rule.Category,
		Keywords:       rule.Keywords,
		BaseConfidence: rule.BaseConfidence,
		Priority:       rule.Priority,
		IsActive:       rule.IsActive,
		CreatedAt:      rule.CreatedAt,
		UpdatedAt:      rule.UpdatedAt,
		DeletedAt:      deletedAt,
	}
}
