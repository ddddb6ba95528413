package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"stackit/internal/models"
)

// errVoteRaced signals that the ledger row read at the start of the
// transaction was changed by a concurrent request before this one could
// act on it. The caller reruns the toggle against the committed state.
var errVoteRaced = errors.New("vote ledger row changed concurrently")

// VoteService owns the vote ledger and the derived vote totals on
// questions and answers.
type VoteService struct {
	db *gorm.DB
}

func NewVoteService(db *gorm.DB) *VoteService {
	return &VoteService{db: db}
}

// CastVote records, reverses, or removes a user's vote on a content item
// and returns the item's new vote total.
//
// Casting the same direction twice removes the vote (toggle). Casting the
// opposite direction moves the total by two, one unit to shed the old vote
// and one to apply the new. The ledger row and the total change commit in
// one transaction, so readers never see one without the other.
func (s *VoteService) CastVote(ctx context.Context, userID uint, contentType string, contentID uint, voteType string) (int, error) {
	if contentType != models.ContentTypeQuestion && contentType != models.ContentTypeAnswer {
		return 0, models.NewValidationError("content_type must be \"question\" or \"answer\"")
	}
	if voteType != models.VoteUp && voteType != models.VoteDown {
		return 0, models.NewValidationError("vote_type must be \"up\" or \"down\"")
	}

	unit := 1
	if voteType == models.VoteDown {
		unit = -1
	}

	var total int
	cast := func() error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var existing models.Vote
			err := tx.Where("user_id = ? AND content_type = ? AND content_id = ?",
				userID, contentType, contentID).First(&existing).Error

			var delta int
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				vote := models.Vote{
					UserID:      userID,
					ContentType: contentType,
					ContentID:   contentID,
					VoteType:    voteType,
				}
				if err := tx.Create(&vote).Error; err != nil {
					return err
				}
				delta = unit
			case err != nil:
				return err
			case existing.VoteType == voteType:
				// Toggle off: remove the vote and give back its unit. Zero
				// rows deleted means a rival request removed the row after
				// our read; applying the delta anyway would detach the
				// total from the ledger.
				res := tx.Delete(&existing)
				if res.Error != nil {
					return res.Error
				}
				if res.RowsAffected == 0 {
					return errVoteRaced
				}
				delta = -unit
			default:
				// Reversal: the total sheds the old direction and gains
				// the new one in a single step. The old direction is part
				// of the predicate so a row flipped or deleted by a rival
				// request surfaces as zero rows affected.
				res := tx.Model(&models.Vote{}).
					Where("id = ? AND vote_type = ?", existing.ID, existing.VoteType).
					Update("vote_type", voteType)
				if res.Error != nil {
					return res.Error
				}
				if res.RowsAffected == 0 {
					return errVoteRaced
				}
				delta = 2 * unit
			}

			newTotal, err := applyVoteDelta(tx, contentType, contentID, delta)
			if err != nil {
				return err
			}
			total = newTotal
			return nil
		})
	}

	err := cast()
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, errVoteRaced) {
		// A concurrent request changed this user's ledger row first.
		// Rerun the toggle logic against the committed state.
		err = cast()
	}

	switch {
	case err == nil:
		return total, nil
	case errors.Is(err, gorm.ErrDuplicatedKey), errors.Is(err, errVoteRaced):
		return 0, models.NewConflictError("vote is being modified concurrently")
	default:
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return 0, appErr
		}
		return 0, models.NewInternalError(err)
	}
}

// applyVoteDelta shifts the stored vote total of the target item by delta
// using a relative update, so concurrent writers compose instead of
// overwriting each other. Returns the total after the shift.
func applyVoteDelta(tx *gorm.DB, contentType string, contentID uint, delta int) (int, error) {
	var target interface{}
	switch contentType {
	case models.ContentTypeQuestion:
		target = &models.Question{}
	case models.ContentTypeAnswer:
		target = &models.Answer{}
	}

	res := tx.Model(target).Where("id = ?", contentID).
		UpdateColumn("votes", gorm.Expr("votes + ?", delta))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, models.NewNotFoundError(contentType, contentID)
	}

	var total int
	if err := tx.Model(target).Select("votes").Where("id = ?", contentID).Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
