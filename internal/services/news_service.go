package services

import (
	"context"

	"github.com/xcessv/beefboard/internal/apperrors"
	"github.com/xcessv/beefboard/internal/models"
	"github.com/xcessv/beefboard/internal/repositories"
)

// NewsService manages editorial news posts, their like sets and polls.
type NewsService struct {
	news   repositories.NewsRepository
	users  repositories.UserRepository
	fanout *Fanout
}

func NewNewsService(newsRepo repositories.NewsRepository, userRepo repositories.UserRepository, fanout *Fanout) *NewsService {
	return &NewsService{news: newsRepo, users: userRepo, fanout: fanout}
}

// CreateNews is admin-only; news (and their polls) are editorial content.
func (s *NewsService) CreateNews(ctx context.Context, author *models.User, req *models.CreateNewsRequest) (*models.News, error) {
	if !author.IsAdmin() {
		return nil, apperrors.Authorizationf("only admins can publish news")
	}

	news := &models.News{
		AuthorID: author.ID,
		Title:    req.Title,
		Content:  req.Content,
		ImageURL: req.ImageURL,
	}
	if req.Poll != nil {
		options := make([]models.PollOption, len(req.Poll.Options))
		for i, text := range req.Poll.Options {
			options[i] = models.PollOption{Text: text, Voters: []uint{}}
		}
		news.Poll = &models.Poll{Question: req.Poll.Question, Options: options}
	}

	if err := s.news.Create(ctx, news); err != nil {
		return nil, err
	}
	return news, nil
}

func (s *NewsService) GetNews(ctx context.Context, id string) (*models.News, error) {
	return s.news.GetByID(ctx, id)
}

func (s *NewsService) ListNews(ctx context.Context, page, limit int) ([]models.News, int64, error) {
	skip := int64((page - 1) * limit)
	return s.news.List(ctx, skip, int64(limit))
}

// SetNewsLike is the news-level like primitive; same contract as
// CommentService.SetCommentLike.
func (s *NewsService) SetNewsLike(ctx context.Context, newsID string, user *models.User, liked bool) (*models.News, bool, error) {
	if _, err := s.news.GetByID(ctx, newsID); err != nil {
		return nil, false, err
	}

	var changed bool
	var err error
	if liked {
		changed, err = s.news.AddLike(ctx, newsID, models.NewLikeRecord(user))
	} else {
		changed, err = s.news.RemoveLike(ctx, newsID, user.ID)
	}
	if err != nil {
		return nil, false, err
	}

	updated, err := s.news.GetByID(ctx, newsID)
	if err != nil {
		return nil, false, err
	}

	if changed && liked {
		s.fanout.NewsLiked(updated, s.authorName(updated.AuthorID), user)
	}
	return updated, changed, nil
}

func (s *NewsService) ToggleNewsLike(ctx context.Context, newsID string, user *models.User) (*models.News, error) {
	news, err := s.news.GetByID(ctx, newsID)
	if err != nil {
		return nil, err
	}
	updated, _, err := s.SetNewsLike(ctx, newsID, user, !news.LikedBy(user.ID))
	return updated, err
}

// VotePoll records the user's vote for one option, replacing any previous
// vote. An out-of-range option index is rejected rather than defaulted.
func (s *NewsService) VotePoll(ctx context.Context, newsID string, user *models.User, optionIndex int) (*models.News, error) {
	news, err := s.news.GetByID(ctx, newsID)
	if err != nil {
		return nil, err
	}
	if news.Poll == nil {
		return nil, apperrors.Validationf("news item has no poll")
	}
	if optionIndex < 0 || optionIndex >= len(news.Poll.Options) {
		return nil, apperrors.Validationf("unknown poll option %d", optionIndex)
	}

	alreadyVoted := news.VotedOption(user.ID) == optionIndex

	if err := s.news.SetPollVote(ctx, newsID, optionIndex, user.ID); err != nil {
		return nil, err
	}

	updated, err := s.news.GetByID(ctx, newsID)
	if err != nil {
		return nil, err
	}

	if !alreadyVoted {
		s.fanout.PollVoted(updated, s.authorName(updated.AuthorID), user, optionIndex)
	}
	return updated, nil
}

// authorName resolves the news author's current display name; news items do
// not denormalize it. Falls back to empty on lookup failure, which the
// dispatcher tolerates.
func (s *NewsService) authorName(authorID uint) string {
	author, err := s.users.GetUserByID(authorID)
	if err != nil {
		return ""
	}
	return author.DisplayName
}
