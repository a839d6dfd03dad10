package loading

import (
	"context"
	"database/sql/driver"
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-pipeline/infrastructure/repository/mocks"
	"github.com/vfg2006/sales-pipeline/internal/dataset"
	"github.com/vfg2006/sales-pipeline/internal/domain"
	"github.com/vfg2006/sales-pipeline/internal/usecases/validating"
	"go.uber.org/mock/gomock"
)

func cleanTable(n int) *dataset.Table {
	t := dataset.New(domain.RequiredColumns)
	for i := 0; i < n; i++ {
		t.Append([]string{
			fmt.Sprintf("ORD%04d", i),
			"2024-01-05",
			"Maria Souza",
			"Phone",
			"2",
			"100.00",
			"200.00",
		})
	}
	return t
}

func TestService_Load_RecusaDadosInvalidos(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Nenhuma chamada ao repositório é esperada
	mockRepo := mocks.NewMockSaleRepository(ctrl)
	service := NewService(mockRepo, validating.NewService(), 100)

	table := dataset.New(domain.RequiredColumns)
	table.Append([]string{"A1", "2024-01-05", "Maria Souza", "Phone", "1", "100.00", "100.00"})
	table.Append([]string{"A1", "2024-01-06", "João Lima", "Tablet", "2", "50.00", "100.00"})

	report, err := service.Load(context.Background(), table)

	var validationErr *domain.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Contains(t, validationErr.Issues, "Found 2 duplicate order_ids")
	assert.Zero(t, report.Attempted)
	assert.Zero(t, report.Inserted)
}

func TestService_Load_LotesSequenciais(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockSaleRepository(ctrl)
	service := NewService(mockRepo, validating.NewService(), 100)

	var batchSizes []int

	mockRepo.EXPECT().EnsureSchema(gomock.Any()).Return(nil)
	mockRepo.EXPECT().
		UpsertBatch(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, records []domain.SaleRecord) (int, error) {
			batchSizes = append(batchSizes, len(records))
			return len(records), nil
		}).
		Times(3)
	mockRepo.EXPECT().Count(gomock.Any()).Return(int64(250), nil)

	report, err := service.Load(context.Background(), cleanTable(250))

	require.NoError(t, err)
	assert.Equal(t, []int{100, 100, 50}, batchSizes)
	assert.Equal(t, 250, report.Attempted)
	assert.Equal(t, 250, report.Inserted)
	assert.Equal(t, int64(250), report.TotalInStore)
}

func TestService_Load_LoteComFalhaEPulado(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockSaleRepository(ctrl)
	service := NewService(mockRepo, validating.NewService(), 100)

	calls := 0

	mockRepo.EXPECT().EnsureSchema(gomock.Any()).Return(nil)
	mockRepo.EXPECT().
		UpsertBatch(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, records []domain.SaleRecord) (int, error) {
			calls++
			if calls == 2 {
				return 0, errors.New("erro transitório do banco")
			}
			return len(records), nil
		}).
		Times(3)
	mockRepo.EXPECT().Count(gomock.Any()).Return(int64(150), nil)

	report, err := service.Load(context.Background(), cleanTable(250))

	// Falha de lote não é fatal para a carga
	require.NoError(t, err)
	assert.Equal(t, 250, report.Attempted)
	assert.Equal(t, 150, report.Inserted)
	require.Len(t, report.Batches, 3)
	assert.True(t, report.Batches[0].Ok())
	assert.False(t, report.Batches[1].Ok())
	assert.True(t, report.Batches[2].Ok())
}

func TestService_Load_ErroDeConexaoAborta(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockSaleRepository(ctrl)
	service := NewService(mockRepo, validating.NewService(), 100)

	mockRepo.EXPECT().EnsureSchema(gomock.Any()).Return(nil)
	mockRepo.EXPECT().
		UpsertBatch(gomock.Any(), gomock.Any()).
		Return(0, fmt.Errorf("erro ao executar a query: %w", driver.ErrBadConn))

	report, err := service.Load(context.Background(), cleanTable(250))

	// Aborta no primeiro lote, sem tentar os demais
	require.Error(t, err)
	assert.Equal(t, 0, report.Inserted)
	assert.Len(t, report.Batches, 1)
}

func TestService_Run_EntradaInexistente(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockSaleRepository(ctrl)
	service := NewService(mockRepo, validating.NewService(), 100)

	_, err := service.Run(context.Background(), "nao-existe.csv")

	assert.True(t, errors.Is(err, domain.ErrInputNotFound))
}

func TestService_Load_ConverteDataParaFormatoCanonico(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockSaleRepository(ctrl)
	service := NewService(mockRepo, validating.NewService(), 100)

	table := dataset.New(domain.RequiredColumns)
	table.Append([]string{"A1", "2024/01/05", "Maria Souza", "Phone", "2", "100.00", "200.00"})

	mockRepo.EXPECT().EnsureSchema(gomock.Any()).Return(nil)
	mockRepo.EXPECT().
		UpsertBatch(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, records []domain.SaleRecord) (int, error) {
			require.Len(t, records, 1)
			assert.Equal(t, "2024-01-05", records[0].Date.Format("2006-01-02"))
			assert.Equal(t, 2, records[0].Quantity)
			assert.Equal(t, 100.0, records[0].PricePerUnit)
			return 1, nil
		})
	mockRepo.EXPECT().Count(gomock.Any()).Return(int64(1), nil)

	_, err := service.Load(context.Background(), table)
	require.NoError(t, err)
}
