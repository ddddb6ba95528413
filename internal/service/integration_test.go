package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"stackit/internal/database"
	"stackit/internal/models"
)

// newPostgresDB spins up a throwaway Postgres container. Skips when Docker
// is not available.
func newPostgresDB(t *testing.T) *gorm.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("stackit_test"),
		tcpostgres.WithUsername("stackit"),
		tcpostgres.WithPassword("stackit"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Skipf("skipping: could not start postgres container: %v", err)
	}
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	return db
}

func TestCastVote_ConcurrentVotersOnPostgres(t *testing.T) {
	db := newPostgresDB(t)

	author := models.User{Username: "author", Email: "author@example.com", Password: "x"}
	require.NoError(t, db.Create(&author).Error)
	question := models.Question{Title: "Busy question", Description: "Everyone votes", UserID: author.ID}
	require.NoError(t, db.Create(&question).Error)

	const voters = 10
	userIDs := make([]uint, voters)
	for i := range userIDs {
		u := models.User{
			Username: fmt.Sprintf("voter%d", i),
			Email:    fmt.Sprintf("voter%d@example.com", i),
			Password: "x",
		}
		require.NoError(t, db.Create(&u).Error)
		userIDs[i] = u.ID
	}

	svc := NewVoteService(db)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, voters)
	for _, id := range userIDs {
		wg.Add(1)
		go func(userID uint) {
			defer wg.Done()
			_, err := svc.CastVote(ctx, userID, models.ContentTypeQuestion, question.ID, models.VoteUp)
			errs <- err
		}(id)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	// The total matches the ledger exactly: no lost or double-counted votes.
	var q models.Question
	require.NoError(t, db.First(&q, question.ID).Error)
	assert.Equal(t, voters, q.Votes)

	var ledger int64
	require.NoError(t, db.Model(&models.Vote{}).
		Where("content_type = ? AND content_id = ?", models.ContentTypeQuestion, question.ID).
		Count(&ledger).Error)
	assert.EqualValues(t, voters, ledger)
}

func TestAcceptAnswer_UniqueAcceptedOnPostgres(t *testing.T) {
	db := newPostgresDB(t)

	asker := models.User{Username: "asker", Email: "asker@example.com", Password: "x"}
	require.NoError(t, db.Create(&asker).Error)
	question := models.Question{Title: "Contested", Description: "Many answers", UserID: asker.ID}
	require.NoError(t, db.Create(&question).Error)

	answerIDs := make([]uint, 4)
	for i := range answerIDs {
		a := models.Answer{QuestionID: question.ID, UserID: asker.ID, Content: "candidate"}
		require.NoError(t, db.Create(&a).Error)
		answerIDs[i] = a.ID
	}

	svc := NewAnswerService(db)
	ctx := context.Background()

	// Concurrent accepts of different answers must still converge to
	// exactly one accepted answer.
	var wg sync.WaitGroup
	for _, id := range answerIDs {
		wg.Add(1)
		go func(answerID uint) {
			defer wg.Done()
			_ = svc.AcceptAnswer(ctx, answerID, asker.ID)
		}(id)
	}
	wg.Wait()

	var accepted int64
	require.NoError(t, db.Model(&models.Answer{}).
		Where("question_id = ? AND accepted = ?", question.ID, true).
		Count(&accepted).Error)
	assert.EqualValues(t, 1, accepted)
}
