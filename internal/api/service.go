package api

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "vitalkeeper.v1.DataService"

const (
	MethodPing           = "/" + ServiceName + "/Ping"
	MethodPushActivities = "/" + ServiceName + "/PushActivities"
	MethodPushProfile    = "/" + ServiceName + "/PushProfile"
	MethodLeaderboard    = "/" + ServiceName + "/Leaderboard"
	MethodExportJournal  = "/" + ServiceName + "/ExportJournal"
)

// DataServiceServer is implemented by the remote data service.
type DataServiceServer interface {
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	PushActivities(context.Context, *PushActivitiesRequest) (*PushActivitiesResponse, error)
	PushProfile(context.Context, *PushProfileRequest) (*PushProfileResponse, error)
	Leaderboard(context.Context, *LeaderboardRequest) (*LeaderboardResponse, error)
	ExportJournal(context.Context, *ExportJournalRequest) (*ExportJournalResponse, error)
}

func unaryHandler[Req, Resp any](method string, call func(DataServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(DataServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: method}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(DataServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// ServiceDesc describes DataService for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DataServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Ping", Handler: unaryHandler(MethodPing, DataServiceServer.Ping)},
		{MethodName: "PushActivities", Handler: unaryHandler(MethodPushActivities, DataServiceServer.PushActivities)},
		{MethodName: "PushProfile", Handler: unaryHandler(MethodPushProfile, DataServiceServer.PushProfile)},
		{MethodName: "Leaderboard", Handler: unaryHandler(MethodLeaderboard, DataServiceServer.Leaderboard)},
		{MethodName: "ExportJournal", Handler: unaryHandler(MethodExportJournal, DataServiceServer.ExportJournal)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "vitalkeeper/v1/data.json",
}

func RegisterDataServiceServer(s grpc.ServiceRegistrar, srv DataServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// DataServiceClient calls DataService using the JSON codec.
type DataServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewDataServiceClient(cc grpc.ClientConnInterface) *DataServiceClient {
	return &DataServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *DataServiceClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, MethodPing, in, opts)
}

func (c *DataServiceClient) PushActivities(ctx context.Context, in *PushActivitiesRequest, opts ...grpc.CallOption) (*PushActivitiesResponse, error) {
	return invoke[PushActivitiesResponse](ctx, c.cc, MethodPushActivities, in, opts)
}

func (c *DataServiceClient) PushProfile(ctx context.Context, in *PushProfileRequest, opts ...grpc.CallOption) (*PushProfileResponse, error) {
	return invoke[PushProfileResponse](ctx, c.cc, MethodPushProfile, in, opts)
}

func (c *DataServiceClient) Leaderboard(ctx context.Context, in *LeaderboardRequest, opts ...grpc.CallOption) (*LeaderboardResponse, error) {
	return invoke[LeaderboardResponse](ctx, c.cc, MethodLeaderboard, in, opts)
}

func (c *DataServiceClient) ExportJournal(ctx context.Context, in *ExportJournalRequest, opts ...grpc.CallOption) (*ExportJournalResponse, error) {
	return invoke[ExportJournalResponse](ctx, c.cc, MethodExportJournal, in, opts)
}
