package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/toinu/ride-api/internal/config"
	"github.com/toinu/ride-api/internal/models"
	"github.com/toinu/ride-api/internal/observability"
	"github.com/toinu/ride-api/internal/utils"
	"go.uber.org/zap"
)

// IdentityClient consults the government CPF registry. Implementations
// must not retry internally; a failed lookup is an auditable outcome,
// not a transient condition the workflow hides.
type IdentityClient interface {
	ConsultCPF(ctx context.Context, cpf, fullName string, birthDate *time.Time) (*models.CPFConsultResult, error)
}

// CBCCPFClient calls the conectagov api-cpf-light gateway
type CBCCPFClient struct {
	baseURL   string
	authToken string
	client    *http.Client
	logger    *zap.Logger
	mockMode  bool
}

// NewCBCCPFClient creates a new CPF registry client. In development the
// client answers with a mocked REGULAR record instead of calling out.
func NewCBCCPFClient(cfg *config.Config, logger *zap.Logger) *CBCCPFClient {
	return &CBCCPFClient{
		baseURL:   cfg.CPFProviderBaseURL,
		authToken: cfg.CPFProviderToken,
		client: &http.Client{
			Timeout: cfg.CPFProviderTimeout,
		},
		logger:   logger,
		mockMode: cfg.Environment == "development",
	}
}

// cbcResponse is the wire format of the api-cpf-light consulta endpoint
type cbcResponse struct {
	NI         string `json:"ni"`
	Nome       string `json:"nome"`
	Nascimento string `json:"nascimento"`
	Situacao   struct {
		Codigo    string `json:"codigo"`
		Descricao string `json:"descricao"`
	} `json:"situacao"`
}

// ConsultCPF looks up a CPF in the government registry
func (c *CBCCPFClient) ConsultCPF(ctx context.Context, cpf, fullName string, birthDate *time.Time) (*models.CPFConsultResult, error) {
	ctx, span := utils.TraceExternalService(ctx, "cbc_cpf", "consult_cpf")
	defer span.End()

	c.logger.Info("starting CPF registry consultation",
		zap.String("cpf", observability.MaskCPF(cpf)))

	if c.mockMode {
		return c.mockConsultation(cpf, fullName, birthDate), nil
	}

	return c.realConsultation(ctx, cpf)
}

// mockConsultation answers like the registry would for a passenger
// whose declared data is correct and in regular standing
func (c *CBCCPFClient) mockConsultation(cpf, fullName string, birthDate *time.Time) *models.CPFConsultResult {
	nome := fullName
	if nome == "" {
		nome = "NOME MOCKADO"
	}

	nascimento := "1990-01-01"
	if birthDate != nil {
		nascimento = birthDate.Format("2006-01-02")
	}

	return &models.CPFConsultResult{
		CPF:               cpf,
		Nome:              nome,
		DataNascimento:    nascimento,
		SituacaoCadastral: models.RegistryStatusRegular,
	}
}

func (c *CBCCPFClient) realConsultation(ctx context.Context, cpf string) (*models.CPFConsultResult, error) {
	url := fmt.Sprintf("%s/consulta/cpf/%s", strings.TrimRight(c.baseURL, "/"), cpf)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.authToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to consult CPF registry: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("CPF registry returned status %d", resp.StatusCode)
	}

	var body cbcResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode CPF registry response: %w", err)
	}

	nascimento, err := parseRegistryBirthDate(body.Nascimento)
	if err != nil {
		return nil, fmt.Errorf("failed to parse registry birth date: %w", err)
	}

	return &models.CPFConsultResult{
		CPF:               body.NI,
		Nome:              body.Nome,
		DataNascimento:    nascimento,
		SituacaoCadastral: strings.ToUpper(strings.TrimSpace(body.Situacao.Descricao)),
	}, nil
}

// parseRegistryBirthDate converts the gateway's ddMMyyyy date to ISO
func parseRegistryBirthDate(raw string) (string, error) {
	t, err := time.Parse("02012006", raw)
	if err != nil {
		return "", err
	}
	return t.Format("2006-01-02"), nil
}
