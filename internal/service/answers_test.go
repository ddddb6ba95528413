package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"stackit/internal/models"
	"stackit/internal/testutil"
)

func seedAcceptFixtures(t *testing.T, db *gorm.DB) (asker models.User, answers [2]models.Answer) {
	t.Helper()

	asker = models.User{Username: "asker", Email: "asker@example.com", Password: "x"}
	require.NoError(t, db.Create(&asker).Error)

	answerer := models.User{Username: "answerer", Email: "answerer@example.com", Password: "x"}
	require.NoError(t, db.Create(&answerer).Error)

	question := models.Question{Title: "Pick one", Description: "Which answer wins?", UserID: asker.ID}
	require.NoError(t, db.Create(&question).Error)

	for i := range answers {
		answers[i] = models.Answer{QuestionID: question.ID, UserID: answerer.ID, Content: "An answer"}
		require.NoError(t, db.Create(&answers[i]).Error)
	}
	return asker, answers
}

func acceptedFlags(t *testing.T, db *gorm.DB, ids [2]uint) [2]bool {
	t.Helper()
	var flags [2]bool
	for i, id := range ids {
		var a models.Answer
		require.NoError(t, db.First(&a, id).Error)
		flags[i] = a.Accepted
	}
	return flags
}

func countAccepted(t *testing.T, db *gorm.DB, questionID uint) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.Answer{}).
		Where("question_id = ? AND accepted = ?", questionID, true).
		Count(&n).Error)
	return n
}

func TestAcceptAnswer_MovesBetweenSiblings(t *testing.T) {
	db := testutil.NewTestDB(t)
	asker, answers := seedAcceptFixtures(t, db)
	ids := [2]uint{answers[0].ID, answers[1].ID}

	svc := NewAnswerService(db)
	ctx := context.Background()

	require.NoError(t, svc.AcceptAnswer(ctx, answers[0].ID, asker.ID))
	assert.Equal(t, [2]bool{true, false}, acceptedFlags(t, db, ids))

	require.NoError(t, svc.AcceptAnswer(ctx, answers[1].ID, asker.ID))
	assert.Equal(t, [2]bool{false, true}, acceptedFlags(t, db, ids))

	assert.EqualValues(t, 1, countAccepted(t, db, answers[0].QuestionID))
}

func TestAcceptAnswer_ReacceptIsNoOp(t *testing.T) {
	db := testutil.NewTestDB(t)
	asker, answers := seedAcceptFixtures(t, db)

	svc := NewAnswerService(db)
	ctx := context.Background()

	require.NoError(t, svc.AcceptAnswer(ctx, answers[0].ID, asker.ID))
	require.NoError(t, svc.AcceptAnswer(ctx, answers[0].ID, asker.ID))

	assert.EqualValues(t, 1, countAccepted(t, db, answers[0].QuestionID))
}

func TestAcceptAnswer_AtMostOneAcceptedAfterAnySequence(t *testing.T) {
	db := testutil.NewTestDB(t)
	asker, answers := seedAcceptFixtures(t, db)

	svc := NewAnswerService(db)
	ctx := context.Background()

	sequence := []uint{answers[0].ID, answers[1].ID, answers[1].ID, answers[0].ID, answers[1].ID}
	for _, id := range sequence {
		require.NoError(t, svc.AcceptAnswer(ctx, id, asker.ID))
		assert.LessOrEqual(t, countAccepted(t, db, answers[0].QuestionID), int64(1))
	}
}

func TestAcceptAnswer_ForbiddenForNonOwner(t *testing.T) {
	db := testutil.NewTestDB(t)
	asker, answers := seedAcceptFixtures(t, db)
	ids := [2]uint{answers[0].ID, answers[1].ID}

	stranger := models.User{Username: "stranger", Email: "stranger@example.com", Password: "x"}
	require.NoError(t, db.Create(&stranger).Error)

	svc := NewAnswerService(db)
	ctx := context.Background()

	require.NoError(t, svc.AcceptAnswer(ctx, answers[0].ID, asker.ID))

	err := svc.AcceptAnswer(ctx, answers[1].ID, stranger.ID)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "FORBIDDEN", appErr.Code)

	// Acceptance state is unchanged.
	assert.Equal(t, [2]bool{true, false}, acceptedFlags(t, db, ids))
}

func TestAcceptAnswer_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	asker, _ := seedAcceptFixtures(t, db)

	svc := NewAnswerService(db)

	err := svc.AcceptAnswer(context.Background(), 9999, asker.ID)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}
