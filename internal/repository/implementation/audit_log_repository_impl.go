package implementation

import (
	"context"
	"encoding/json"

	"ai-agenthub-be/internal/entity"
	"ai-agenthub-be/internal/model"
	"ai-agenthub-be/internal/repository/contract"
	"ai-agenthub-be/internal/repository/specification"

	"gorm.io/gorm"
)

type AuditLogRepositoryImpl struct {
	db *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) contract.AuditLogRepository {
	return &AuditLogRepositoryImpl{db: db}
}

func (r *AuditLogRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *AuditLogRepositoryImpl) Create(ctx context.Context, log *entity.AuditLog) error {
	details, err := json.Marshal(log.Details)
	if err != nil {
		return err
	}
	m := model.AuditLog{
		Id:        log.Id,
		Actor:     log.Actor,
		Action:    log.Action,
		Details:   details,
		CreatedAt: log.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(&m).Error
}

func (r *AuditLogRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AuditLog, error) {
	var models []*model.AuditLog
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.AuditLog, len(models))
	for i, m := range models {
		var details map[string]interface{}
		if len(m.Details) > 0 {
			_ = json.Unmarshal(m.Details, &details)
		}
		entities[i] = &entity.AuditLog{
			Id:        m.Id,
			Actor:     m.Actor,
			Action:    m.Action,
			Details:   details,
			CreatedAt: m.CreatedAt,
		}
	}
	return entities, nil
}

func (r *AuditLogRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.AuditLog{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
