package client

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/vitalkeeper/internal/api"
	"github.com/dmitrijs2005/vitalkeeper/internal/client/models"
	"github.com/dmitrijs2005/vitalkeeper/internal/common"
)

const pingTimeout = 5 * time.Second

// dataService is the subset of api.DataServiceClient used here.
type dataService interface {
	Ping(ctx context.Context, in *api.PingRequest, opts ...grpc.CallOption) (*api.PingResponse, error)
	PushActivities(ctx context.Context, in *api.PushActivitiesRequest, opts ...grpc.CallOption) (*api.PushActivitiesResponse, error)
	PushProfile(ctx context.Context, in *api.PushProfileRequest, opts ...grpc.CallOption) (*api.PushProfileResponse, error)
	Leaderboard(ctx context.Context, in *api.LeaderboardRequest, opts ...grpc.CallOption) (*api.LeaderboardResponse, error)
	ExportJournal(ctx context.Context, in *api.ExportJournalRequest, opts ...grpc.CallOption) (*api.ExportJournalResponse, error)
}

type GRPCClient struct {
	endpointURL string
	accessToken string
	conn        *grpc.ClientConn
	client      dataService
}

// NewGRPCClient prepares a connection to endpointURL. grpc.NewClient does
// not dial, so an unreachable server only shows up on the first call.
func NewGRPCClient(endpointURL, accessToken string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, accessToken: accessToken}

	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(endpointURL, opts...)
	if err != nil {
		return nil, fmt.Errorf("grpc client %s: %w", endpointURL, err)
	}
	c.conn = conn
	c.client = api.NewDataServiceClient(conn)
	return c, nil
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AccessTokenHeaderName, token)
	return metadata.NewOutgoingContext(ctx, md)
}

func (c *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if c.accessToken != "" {
		ctx = withAccessToken(ctx, c.accessToken)
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

func (c *GRPCClient) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

func (c *GRPCClient) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	resp, err := c.client.Ping(ctx, &api.PingRequest{})
	if err != nil {
		return mapError(err)
	}
	if resp.Status != "OK" {
		return ErrUnavailable
	}
	return nil
}

func (c *GRPCClient) PushActivities(ctx context.Context, activities []models.Activity) ([]string, error) {
	req := &api.PushActivitiesRequest{Activities: make([]api.Activity, 0, len(activities))}
	for _, a := range activities {
		req.Activities = append(req.Activities, api.Activity{
			ID:        a.ID,
			Kind:      string(a.Kind),
			Day:       a.Day,
			Payload:   a.Payload,
			CreatedAt: a.CreatedAt,
		})
	}

	resp, err := c.client.PushActivities(ctx, req)
	if err != nil {
		return nil, mapError(err)
	}
	return resp.Accepted, nil
}

func (c *GRPCClient) PushProfile(ctx context.Context, p models.Profile) error {
	req := &api.PushProfileRequest{Profile: api.Profile{
		DisplayName:      p.DisplayName,
		Streak:           p.Streak,
		LastActivityDate: p.LastActivityDate,
		LongestStreak:    p.LongestStreak,
		XP:               p.XP,
		Coins:            p.Coins,
		UpdatedAt:        p.UpdatedAt,
	}}
	if _, err := c.client.PushProfile(ctx, req); err != nil {
		return mapError(err)
	}
	return nil
}

func (c *GRPCClient) Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	resp, err := c.client.Leaderboard(ctx, &api.LeaderboardRequest{Limit: limit})
	if err != nil {
		return nil, mapError(err)
	}

	out := make([]models.LeaderboardEntry, 0, len(resp.Entries))
	for _, e := range resp.Entries {
		out = append(out, models.LeaderboardEntry{
			Rank:          e.Rank,
			UserID:        e.UserID,
			DisplayName:   e.DisplayName,
			Streak:        e.Streak,
			LongestStreak: e.LongestStreak,
			XP:            e.XP,
		})
	}
	return out, nil
}

func (c *GRPCClient) ExportJournal(ctx context.Context) (models.JournalExport, error) {
	resp, err := c.client.ExportJournal(ctx, &api.ExportJournalRequest{})
	if err != nil {
		return models.JournalExport{}, mapError(err)
	}
	return models.JournalExport{URL: resp.URL, Key: resp.Key, Entries: resp.Entries}, nil
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return fmt.Errorf("%w: %s", ErrUnauthorized, st.Message())
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
