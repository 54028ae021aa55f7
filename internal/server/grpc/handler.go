package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/vitalkeeper/internal/api"
	"github.com/dmitrijs2005/vitalkeeper/internal/common"
	"github.com/dmitrijs2005/vitalkeeper/internal/server/models"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var _ api.DataServiceServer = (*GRPCServer)(nil)

func (s *GRPCServer) Ping(ctx context.Context, req *api.PingRequest) (*api.PingResponse, error) {
	return &api.PingResponse{Status: "OK"}, nil
}

func (s *GRPCServer) PushActivities(ctx context.Context, req *api.PushActivitiesRequest) (*api.PushActivitiesResponse, error) {
	userID, ok := userIDFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "unauthorized")
	}

	batch := make([]models.Activity, len(req.Activities))
	for i, a := range req.Activities {
		batch[i] = models.Activity{
			ID:        a.ID,
			UserID:    userID,
			Kind:      a.Kind,
			Day:       a.Day,
			Payload:   a.Payload,
			CreatedAt: a.CreatedAt,
		}
	}

	accepted, err := s.activities.Push(ctx, userID, batch)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &api.PushActivitiesResponse{Accepted: accepted}, nil
}

func (s *GRPCServer) PushProfile(ctx context.Context, req *api.PushProfileRequest) (*api.PushProfileResponse, error) {
	userID, ok := userIDFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "unauthorized")
	}

	p := req.Profile
	_, err := s.profiles.Save(ctx, &models.Profile{
		UserID:           userID,
		DisplayName:      p.DisplayName,
		Streak:           p.Streak,
		LastActivityDate: p.LastActivityDate,
		LongestStreak:    p.LongestStreak,
		XP:               p.XP,
		Coins:            p.Coins,
		UpdatedAt:        p.UpdatedAt,
	})
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &api.PushProfileResponse{}, nil
}

func (s *GRPCServer) Leaderboard(ctx context.Context, req *api.LeaderboardRequest) (*api.LeaderboardResponse, error) {
	top, err := s.profiles.Leaderboard(ctx, req.Limit)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &api.LeaderboardResponse{Entries: models.LeaderboardEntries(top)}, nil
}

func (s *GRPCServer) ExportJournal(ctx context.Context, req *api.ExportJournalRequest) (*api.ExportJournalResponse, error) {
	userID, ok := userIDFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "unauthorized")
	}
	if s.exports == nil {
		return nil, status.Error(codes.Unavailable, "export storage is not configured")
	}

	res, err := s.exports.ExportJournal(ctx, userID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &api.ExportJournalResponse{URL: res.URL, Key: res.Key, Entries: res.Entries}, nil
}

func (s *GRPCServer) toStatus(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrInvalidArgument):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, "not found")
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "canceled")
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "deadline exceeded")
	default:
		s.logger.Error(ctx, "internal error", "error", err)
		return status.Error(codes.Internal, "internal error")
	}
}
