package grpc

import (
	"github.com/Popolzen/quranverse/internal/grpc/interceptors"
	"github.com/Popolzen/quranverse/internal/service/quran"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// NewServer создает и настраивает gRPC сервер
func NewServer(verses *quran.VerseService, secretKey string) *grpc.Server {
	srv := grpc.NewServer(
		grpc.UnaryInterceptor(interceptors.UnaryInterceptor(secretKey)),
	)

	RegisterVerseServiceServer(srv, NewVerseServer(verses))

	healthServer := health.NewServer()
	healthServer.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, healthServer)

	return srv
}
