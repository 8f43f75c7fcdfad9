package grpcclient

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"track-svr/internal/codec"
)

const sendTimeout = 5 * time.Second

type GRPCClient struct {
	conn *grpc.ClientConn
}

func NewGRPCClient(addr string, opts ...grpc.DialOption) (*GRPCClient, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, err
	}
	return &GRPCClient{conn: conn}, nil
}

func (g *GRPCClient) Close() error {
	return g.conn.Close()
}

// SendTrack reenvía t como un TrackMsg de un solo registro.
func (g *GRPCClient) SendTrack(ctx context.Context, t codec.Track) error {
	tracks := []codec.Track{t}
	db := codec.NewDataBuf(codec.TrackMsgLen(tracks))
	if _, err := codec.EncodeTrackMsg(db, 0, tracks); err != nil {
		return err
	}
	return g.SendData(ctx, t.ID, db.Bytes())
}

func (g *GRPCClient) SendProximity(ctx context.Context, p codec.ProximityChange) error {
	proxs := []codec.ProximityChange{p}
	db := codec.NewDataBuf(codec.ProximityMsgLen(proxs))
	if _, err := codec.EncodeProximityMsg(db, 0, proxs); err != nil {
		return err
	}
	return g.SendData(ctx, p.RefID, db.Bytes())
}

func (g *GRPCClient) SendData(ctx context.Context, id string, payload []byte) error {
	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()
	ctx = metadata.AppendToOutgoingContext(ctx, TrackIDKey, id)

	res := new(wrapperspb.BoolValue)
	if err := g.conn.Invoke(ctx, SendDataMethod, wrapperspb.Bytes(payload), res); err != nil {
		return err
	}
	if !res.GetValue() {
		return fmt.Errorf("forwarder: rejected data for %s", id)
	}
	return nil
}
