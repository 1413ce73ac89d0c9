package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"ai-agenthub-be/internal/constant"
	"ai-agenthub-be/internal/entity"
	"ai-agenthub-be/internal/repository/specification"
	"ai-agenthub-be/internal/repository/unitofwork"
	"ai-agenthub-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.UserRepository())
	assert.NotNil(t, uow.ProjectRepository())
	assert.NotNil(t, uow.ChatMessageRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	t.Run("Check User Repository", func(t *testing.T) {
		count, err := uow.UserRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("User count: %d", count)
	})

	t.Run("Check Chat Message Repository", func(t *testing.T) {
		count, err := uow.ChatMessageRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("ChatMessage count: %d", count)
	})

	t.Run("Check Transactional Project And Turns", func(t *testing.T) {
		ctx := context.Background()

		userId := uuid.New()
		user := &entity.User{
			Id:       userId,
			Email:    "test-integration-" + uuid.New().String() + "@example.com",
			FullName: "Integration Test User",
			Role:     "user",
			Status:   "active",
		}

		err := uow.UserRepository().Create(ctx, user)
		assert.NoError(t, err)

		projectId := uuid.New()
		project := &entity.Project{
			Id:                projectId,
			UserId:            userId,
			Name:              "Integration Project",
			SystemInstruction: constant.DefaultSystemInstruction,
			CreatedAt:         time.Now(),
		}

		err = uow.ProjectRepository().Create(ctx, project)
		assert.NoError(t, err)

		// Transaction Test
		err = uow.Begin(ctx)
		assert.NoError(t, err)
		defer uow.Rollback()

		userTurn := &entity.ChatMessage{
			Id:        uuid.New(),
			Chat:      "integration hello",
			Role:      constant.ChatMessageRoleUser,
			ProjectId: projectId,
			CreatedAt: time.Now(),
		}
		err = uow.ChatMessageRepository().Create(ctx, userTurn)
		assert.NoError(t, err)

		modelTurn := &entity.ChatMessage{
			Id:        uuid.New(),
			Chat:      "integration reply",
			Role:      constant.ChatMessageRoleModel,
			ProjectId: projectId,
			CreatedAt: time.Now(),
		}
		err = uow.ChatMessageRepository().Create(ctx, modelTurn)
		assert.NoError(t, err)

		err = uow.Commit()
		assert.NoError(t, err)

		turns, err := uow.ChatMessageRepository().FindAll(ctx,
			specification.ByProjectID{ProjectID: projectId},
			specification.OrderBy{Field: "created_at", Desc: false},
		)
		assert.NoError(t, err)
		assert.Len(t, turns, 2)

		deleted, err := uow.ChatMessageRepository().DeleteByProjectId(ctx, projectId)
		assert.NoError(t, err)
		assert.Equal(t, int64(2), deleted)

		t.Log("Successfully created Project with turns in Transaction")
	})
}
