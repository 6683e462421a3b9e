package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toinu/ride-api/internal/config"
	"github.com/toinu/ride-api/internal/models"
	"go.uber.org/zap"
)

func newTestClient(baseURL, environment string) *CBCCPFClient {
	return NewCBCCPFClient(&config.Config{
		CPFProviderBaseURL: baseURL,
		CPFProviderToken:   "test-token",
		CPFProviderTimeout: 5 * time.Second,
		Environment:        environment,
	}, zap.NewNop())
}

func TestConsultCPF_DevelopmentModeAnswersRegular(t *testing.T) {
	birthDate := time.Date(1990, 5, 20, 0, 0, 0, 0, time.UTC)
	client := newTestClient("http://unused", "development")

	result, err := client.ConsultCPF(context.Background(), "52998224725", "Maria da Silva", &birthDate)
	require.NoError(t, err)

	assert.Equal(t, "52998224725", result.CPF)
	assert.Equal(t, "Maria da Silva", result.Nome)
	assert.Equal(t, "1990-05-20", result.DataNascimento)
	assert.Equal(t, models.RegistryStatusRegular, result.SituacaoCadastral)
}

func TestConsultCPF_ParsesGatewayResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/consulta/cpf/52998224725", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"ni": "52998224725",
			"nome": "MARIA DA SILVA",
			"nascimento": "20051990",
			"situacao": {"codigo": "0", "descricao": "regular"}
		}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, "production")

	result, err := client.ConsultCPF(context.Background(), "52998224725", "", nil)
	require.NoError(t, err)

	assert.Equal(t, "52998224725", result.CPF)
	assert.Equal(t, "MARIA DA SILVA", result.Nome)
	assert.Equal(t, "1990-05-20", result.DataNascimento, "gateway ddMMyyyy date converted to ISO")
	assert.Equal(t, "REGULAR", result.SituacaoCadastral, "situation upper-cased")
}

func TestConsultCPF_GatewayErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestClient(server.URL, "production")

	_, err := client.ConsultCPF(context.Background(), "52998224725", "", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestConsultCPF_InvalidBirthDatePayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ni": "52998224725", "nome": "X", "nascimento": "not-a-date", "situacao": {"codigo": "0", "descricao": "regular"}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, "production")

	_, err := client.ConsultCPF(context.Background(), "52998224725", "", nil)
	require.Error(t, err)
}

func TestConsultCPF_GatewayUnreachable(t *testing.T) {
	client := newTestClient("http://127.0.0.1:1", "production")

	_, err := client.ConsultCPF(context.Background(), "52998224725", "", nil)
	require.Error(t, err)
}
