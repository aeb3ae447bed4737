package grpc

import (
	"context"

	"github.com/Popolzen/quranverse/internal/model"
	"github.com/Popolzen/quranverse/internal/verse"
	"google.golang.org/grpc"
)

// ServiceName полное имя gRPC сервиса
const ServiceName = "quranverse.VerseService"

type GetStateRequest struct{}

type SubmitRequest struct {
	Surah    string         `json:"surah"`
	Verse    string         `json:"verse"`
	Language model.Language `json:"language"`
}

type ResetRequest struct{}

type ShareRequest struct{}

type ReportCopyRequest struct {
	Error string `json:"error,omitempty"`
}

// VerseResponse отображаемое состояние формы
type VerseResponse struct {
	View verse.View `json:"view"`
}

// VerseServiceServer серверная часть quranverse.VerseService
type VerseServiceServer interface {
	GetState(context.Context, *GetStateRequest) (*VerseResponse, error)
	Submit(context.Context, *SubmitRequest) (*VerseResponse, error)
	Reset(context.Context, *ResetRequest) (*VerseResponse, error)
	Share(context.Context, *ShareRequest) (*VerseResponse, error)
	ReportCopy(context.Context, *ReportCopyRequest) (*VerseResponse, error)
}

// unaryHandler собирает grpc.MethodHandler для метода с запросом типа Req
func unaryHandler[Req any](method string, call func(VerseServiceServer, context.Context, *Req) (*VerseResponse, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(VerseServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: "/" + ServiceName + "/" + method,
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(VerseServiceServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// VerseServiceDesc описание сервиса для grpc.Server.RegisterService
var VerseServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*VerseServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryHandler("GetState", VerseServiceServer.GetState),
		unaryHandler("Submit", VerseServiceServer.Submit),
		unaryHandler("Reset", VerseServiceServer.Reset),
		unaryHandler("Share", VerseServiceServer.Share),
		unaryHandler("ReportCopy", VerseServiceServer.ReportCopy),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "quranverse.VerseService",
}

// RegisterVerseServiceServer регистрирует реализацию на сервере
func RegisterVerseServiceServer(s grpc.ServiceRegistrar, srv VerseServiceServer) {
	s.RegisterService(&VerseServiceDesc, srv)
}

// VerseServiceClient клиент quranverse.VerseService поверх JSON кодека
type VerseServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewVerseServiceClient(cc grpc.ClientConnInterface) *VerseServiceClient {
	return &VerseServiceClient{cc: cc}
}

func (c *VerseServiceClient) invoke(ctx context.Context, method string, in any, opts ...grpc.CallOption) (*VerseResponse, error) {
	out := new(VerseResponse)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *VerseServiceClient) GetState(ctx context.Context, in *GetStateRequest, opts ...grpc.CallOption) (*VerseResponse, error) {
	return c.invoke(ctx, "GetState", in, opts...)
}

func (c *VerseServiceClient) Submit(ctx context.Context, in *SubmitRequest, opts ...grpc.CallOption) (*VerseResponse, error) {
	return c.invoke(ctx, "Submit", in, opts...)
}

func (c *VerseServiceClient) Reset(ctx context.Context, in *ResetRequest, opts ...grpc.CallOption) (*VerseResponse, error) {
	return c.invoke(ctx, "Reset", in, opts...)
}

func (c *VerseServiceClient) Share(ctx context.Context, in *ShareRequest, opts ...grpc.CallOption) (*VerseResponse, error) {
	return c.invoke(ctx, "Share", in, opts...)
}

func (c *VerseServiceClient) ReportCopy(ctx context.Context, in *ReportCopyRequest, opts ...grpc.CallOption) (*VerseResponse, error) {
	return c.invoke(ctx, "ReportCopy", in, opts...)
}
