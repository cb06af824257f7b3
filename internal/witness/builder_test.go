package witness

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/goodnatureofminers/chainauth/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewBuilder(t *testing.T) {
	_, err := NewBuilder(nil, zap.NewNop())
	require.Error(t, err)

	ctrl := gomock.NewController(t)
	b, err := NewBuilder(NewMockMetrics(ctrl), nil)
	require.NoError(t, err)
	assert.NotNil(t, b.logger)
}

func TestBuilder_Build(t *testing.T) {
	t.Parallel()

	genesis, txid := testHashes()
	key := testKey(t, 20).Bech32()

	tests := []struct {
		name    string
		req     Request
		prepare func(m *MockMetrics)
		wantErr error
	}{
		{
			name: "records success",
			req:  Request{Kind: KindUtxo, GenesisHash: genesis, TransactionID: txid, SecretKey: key},
			prepare: func(m *MockMetrics) {
				m.EXPECT().ObserveBuild(KindUtxo, nil, gomock.Any())
			},
		},
		{
			name: "records failure",
			req:  Request{Kind: KindAccount, GenesisHash: genesis, TransactionID: txid, SecretKey: key},
			prepare: func(m *MockMetrics) {
				m.EXPECT().ObserveBuild(KindAccount, ErrMissingSpendingCounter, gomock.Any())
			},
			wantErr: ErrMissingSpendingCounter,
		},
		{
			name: "records unsupported kind",
			req:  Request{Kind: KindLegacyUtxo, SecretKey: key},
			prepare: func(m *MockMetrics) {
				m.EXPECT().ObserveBuild(KindLegacyUtxo, gomock.Not(gomock.Nil()), gomock.Any())
			},
			wantErr: ErrUnsupportedKind,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			t.Cleanup(ctrl.Finish)

			metrics := NewMockMetrics(ctrl)
			tt.prepare(metrics)
			b, err := NewBuilder(metrics, zap.NewNop())
			require.NoError(t, err)

			w, err := b.Build(tt.req)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, w)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.req.Kind, w.Kind())
		})
	}
}

func TestBuilder_BuildAll(t *testing.T) {
	t.Parallel()

	genesis, _ := testHashes()
	sk := testKey(t, 21)

	reqs := make([]Request, 20)
	for i := range reqs {
		reqs[i] = Request{
			Kind:            KindAccount,
			GenesisHash:     genesis,
			TransactionID:   model.TransactionID(model.HashBytes([]byte{byte(i)})),
			SecretKey:       sk.Bech32(),
			SpendingCounter: counter(uint32(i)),
		}
	}

	t.Run("keeps request order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		metrics := NewMockMetrics(ctrl)
		metrics.EXPECT().ObserveBuild(KindAccount, nil, gomock.Any()).Times(len(reqs))

		b, err := NewBuilder(metrics, zap.NewNop())
		require.NoError(t, err)

		got, err := b.BuildAll(context.Background(), reqs, 4)
		require.NoError(t, err)
		require.Len(t, got, len(reqs))
		for i, w := range got {
			account, ok := w.(*Account)
			require.True(t, ok)
			assert.Equal(t, model.SpendingCounter(i), account.SpendingCounter())
			assert.True(t, Verify(w, genesis, reqs[i].TransactionID, sk.ToPublic()))
		}
	})

	t.Run("fails without partial output", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		metrics := NewMockMetrics(ctrl)
		metrics.EXPECT().ObserveBuild(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()

		b, err := NewBuilder(metrics, zap.NewNop())
		require.NoError(t, err)

		broken := append([]Request(nil), reqs...)
		broken[7].SpendingCounter = nil

		got, err := b.BuildAll(context.Background(), broken, 4)
		require.ErrorIs(t, err, ErrMissingSpendingCounter)
		assert.Contains(t, err.Error(), broken[7].TransactionID.String())
		assert.Nil(t, got)
	})

	t.Run("stops on canceled context", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		metrics := NewMockMetrics(ctrl)
		metrics.EXPECT().ObserveBuild(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()

		b, err := NewBuilder(metrics, zap.NewNop())
		require.NoError(t, err)
		b.build = func(Request) (Witness, error) { return nil, errors.New("must not be called") }

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		got, err := b.BuildAll(ctx, reqs, 2)
		require.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, got)
	})
}
