package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apppacking "github.com/jhoicas/Empaques-api/internal/application/packing"
	"github.com/jhoicas/Empaques-api/internal/application/usecase"
	"github.com/jhoicas/Empaques-api/internal/domain/entity"
	domainpacking "github.com/jhoicas/Empaques-api/internal/domain/packing"
	"github.com/jhoicas/Empaques-api/internal/domain/repository"
	apphttp "github.com/jhoicas/Empaques-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakePackagingRepo struct {
	nodes map[string]*entity.PackagingNode
}

func (f *fakePackagingRepo) Create(node *entity.PackagingNode) error {
	cp := *node
	f.nodes[node.ID] = &cp
	return nil
}

func (f *fakePackagingRepo) GetByID(id string) (*entity.PackagingNode, error) {
	node, ok := f.nodes[id]
	if !ok {
		return nil, nil
	}
	cp := *node
	return &cp, nil
}

func (f *fakePackagingRepo) GetByBarcode(code string) (*entity.PackagingNode, error) {
	for _, n := range f.nodes {
		if n.Barcode == code && n.IsActive {
			cp := *n
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakePackagingRepo) ListByProduct(productID string) ([]*entity.PackagingNode, error) {
	var out []*entity.PackagingNode
	for _, n := range f.nodes {
		if n.ProductID == productID {
			cp := *n
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakePackagingRepo) ListActive() ([]*entity.PackagingNode, error) {
	var out []*entity.PackagingNode
	for _, n := range f.nodes {
		if n.IsActive {
			cp := *n
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakePackagingRepo) UpdateVersioned(node *entity.PackagingNode, expectedVersion int) (bool, error) {
	current, ok := f.nodes[node.ID]
	if !ok || current.Version != expectedVersion {
		return false, nil
	}
	cp := *node
	cp.Version = expectedVersion + 1
	f.nodes[node.ID] = &cp
	return true, nil
}

func (f *fakePackagingRepo) DeleteVersioned(id string, expectedVersion int) (bool, error) {
	current, ok := f.nodes[id]
	if !ok || current.Version != expectedVersion {
		return false, nil
	}
	delete(f.nodes, id)
	return true, nil
}

type fakeStockRepo struct {
	packaging *fakePackagingRepo
	rows      []entity.StockRow
}

func (f *fakeStockRepo) Upsert(row *entity.StockRow) error {
	for i := range f.rows {
		if f.rows[i].LocationID == row.LocationID && f.rows[i].PackagingID == row.PackagingID {
			f.rows[i] = *row
			return nil
		}
	}
	f.rows = append(f.rows, *row)
	return nil
}

func (f *fakeStockRepo) ListByProduct(productID string) ([]entity.StockRow, error) {
	var out []entity.StockRow
	for _, row := range f.rows {
		if node, ok := f.packaging.nodes[row.PackagingID]; ok && node.ProductID == productID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeStockRepo) CountByPackaging(packagingID string) (int, error) {
	count := 0
	for _, row := range f.rows {
		if row.PackagingID == packagingID {
			count++
		}
	}
	return count, nil
}

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func (f *fakeProductRepo) Create(p *entity.Product) error {
	f.products[p.ID] = p
	return nil
}

func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return f.products[id], nil
}

func (f *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range f.products {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

type fakeTxRunner struct {
	packaging *fakePackagingRepo
	stock     *fakeStockRepo
}

func (f *fakeTxRunner) Run(_ context.Context, fn func(repository.PackagingRepository, repository.StockRepository) error) error {
	return fn(f.packaging, f.stock)
}

// ──────────────────────────────────────────────────────────────────────────────
// Montaje del app de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	productoID = "PROD-001"
	idBase     = "PKG-BASE"
	idCaja     = "PKG-CAJA"
	idEstiba   = "PKG-ESTIBA"
)

type testEnv struct {
	app       *fiber.App
	packaging *fakePackagingRepo
	stock     *fakeStockRepo
}

func nodo(id, name, barcode string, buq int64, isBase bool, parentID string, level int) *entity.PackagingNode {
	return &entity.PackagingNode{
		ID:               id,
		ProductID:        productoID,
		Name:             name,
		Barcode:          barcode,
		BaseUnitQuantity: decimal.NewFromInt(buq),
		IsBaseUnit:       isBase,
		ParentID:         parentID,
		Level:            level,
		IsActive:         true,
		Version:          1,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}
}

// buildEnv levanta el router completo sobre repos en memoria, con el árbol
// base → caja(12) → estiba(240) y stock de 5 cajas.
func buildEnv(t *testing.T) *testEnv {
	t.Helper()

	packaging := &fakePackagingRepo{nodes: map[string]*entity.PackagingNode{
		idBase:   nodo(idBase, "Unidad", "7701234000015", 1, true, "", 0),
		idCaja:   nodo(idCaja, "Caja x12", "7701234000022", 12, false, idBase, 1),
		idEstiba: nodo(idEstiba, "Estiba x240", "", 240, false, idCaja, 2),
	}}
	stock := &fakeStockRepo{packaging: packaging}
	require.NoError(t, stock.Upsert(&entity.StockRow{
		LocationID: "BOD-01", PackagingID: idCaja, Quantity: decimal.NewFromInt(5),
	}))
	products := &fakeProductRepo{products: map[string]*entity.Product{
		productoID: {ID: productoID, SKU: "SKU-001", Name: "Café molido 500g", IsActive: true},
	}}

	validator := domainpacking.NewValidator(0)
	cache := apppacking.NewSnapshotCache(0) // sin caché: cada petición lee los fakes
	engine := apppacking.NewEngineUseCase(packaging, stock, products, validator, cache)
	mutation := apppacking.NewTreeMutationUseCase(&fakeTxRunner{packaging: packaging, stock: stock}, products, validator, cache)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ProductUC:  usecase.NewProductUseCase(products),
		Engine:     engine,
		MutationUC: mutation,
	})
	return &testEnv{app: app, packaging: packaging, stock: stock}
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestGetHierarchy_Retorna200ConArbolAnidado(t *testing.T) {
	env := buildEnv(t)
	resp := doJSON(t, env.app, http.MethodGet, "/api/products/"+productoID+"/packaging", nil)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, productoID, body["product_id"])

	tree := body["tree"].(map[string]any)
	assert.Equal(t, idBase, tree["id"], "la raíz del árbol debe ser la unidad base")
	children := tree["children"].([]any)
	require.Len(t, children, 1)
	assert.Equal(t, idCaja, children[0].(map[string]any)["id"])
}

func TestGetHierarchy_ProductoInexistente_Retorna404(t *testing.T) {
	env := buildEnv(t)
	resp := doJSON(t, env.app, http.MethodGet, "/api/products/NO-EXISTE/packaging", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "NOT_FOUND", body["code"])
}

func TestGetHierarchy_ArbolInvalido_Retorna422ConReporte(t *testing.T) {
	env := buildEnv(t)
	// Segunda unidad base: estructuralmente inválido.
	env.packaging.nodes["PKG-base2"] = nodo("PKG-base2", "Unidad duplicada", "", 1, true, "", 0)

	resp := doJSON(t, env.app, http.MethodGet, "/api/products/"+productoID+"/packaging", nil)
	defer resp.Body.Close()

	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "INVALID_HIERARCHY", body["code"])
	report := body["report"].(map[string]any)
	assert.Equal(t, false, report["is_valid"], "el reporte completo debe viajar en el 422")
	assert.NotEmpty(t, report["errors"])
}

func TestConvert_CajasAUnidades_Retorna200(t *testing.T) {
	env := buildEnv(t)
	resp := doJSON(t, env.app, http.MethodPost, "/api/packaging/convert", map[string]any{
		"quantity":          "3",
		"from_packaging_id": idCaja,
		"to_packaging_id":   idBase,
	})
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "36", body["converted_quantity"])
	assert.Equal(t, true, body["is_exact"])
}

func TestConvert_EmpaqueInexistente_Retorna404(t *testing.T) {
	env := buildEnv(t)
	resp := doJSON(t, env.app, http.MethodPost, "/api/packaging/convert", map[string]any{
		"quantity":          "1",
		"from_packaging_id": "PKG-FANTASMA",
		"to_packaging_id":   idBase,
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestOptimizePicking_StockInsuficiente_Retorna200Parcial(t *testing.T) {
	env := buildEnv(t)
	// Stock: 5 cajas = 60 unidades base. Pedimos 100.
	resp := doJSON(t, env.app, http.MethodPost, "/api/products/"+productoID+"/picking/optimize", map[string]any{
		"requested_base_units": "100",
	})
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode, "faltante de stock no es error HTTP")
	body := decodeBody(t, resp)
	assert.Equal(t, false, body["can_fulfill"])
	assert.Equal(t, "60", body["total_planned"])
	assert.Equal(t, "40", body["remaining"])
}

func TestScanBarcode_CodigoConocido_Retorna200(t *testing.T) {
	env := buildEnv(t)
	resp := doJSON(t, env.app, http.MethodGet, "/api/barcodes/7701234000022", nil)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, idCaja, body["id"])
}

func TestScanBarcode_CodigoDesconocido_Retorna404(t *testing.T) {
	env := buildEnv(t)
	resp := doJSON(t, env.app, http.MethodGet, "/api/barcodes/0000000000000", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAddNode_ArbolResultanteInvalido_Retorna422(t *testing.T) {
	env := buildEnv(t)
	// base_unit_quantity menor que la del padre: rompe la monotonicidad.
	resp := doJSON(t, env.app, http.MethodPost, "/api/products/"+productoID+"/packaging", map[string]any{
		"name":               "Media caja",
		"base_unit_quantity": "6",
		"parent_id":          idCaja,
		"level":              2,
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Len(t, env.packaging.nodes, 3, "un árbol inválido no debe persistir nada")
}

func TestUpdateNode_VersionObsoleta_Retorna409(t *testing.T) {
	env := buildEnv(t)
	resp := doJSON(t, env.app, http.MethodPut, "/api/packaging/"+idCaja, map[string]any{
		"name":               "Caja x12 renombrada",
		"base_unit_quantity": "12",
		"parent_id":          idBase,
		"level":              1,
		"version":            99,
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "VERSION_CONFLICT", body["code"])
}

func TestDeleteNode_ConStockReferente_Retorna409(t *testing.T) {
	env := buildEnv(t)
	resp := doJSON(t, env.app, http.MethodDelete, "/api/packaging/"+idCaja+"?version=1", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "PACKAGING_IN_USE", body["code"])
	_, exists := env.packaging.nodes[idCaja]
	assert.True(t, exists, "el empaque referenciado por stock debe sobrevivir")
}

func TestDeleteNode_SinVersion_Retorna400(t *testing.T) {
	env := buildEnv(t)
	resp := doJSON(t, env.app, http.MethodDelete, "/api/packaging/"+idEstiba, nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpsertStock_CantidadNegativa_Retorna400(t *testing.T) {
	env := buildEnv(t)
	resp := doJSON(t, env.app, http.MethodPost, "/api/stock", map[string]any{
		"location_id":  "BOD-01",
		"packaging_id": idCaja,
		"quantity":     "-1",
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetConsolidated_Retorna200ConTotales(t *testing.T) {
	env := buildEnv(t)
	resp := doJSON(t, env.app, http.MethodGet, "/api/products/"+productoID+"/stock/consolidated", nil)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	consolidated := body["consolidated"].(map[string]any)
	assert.Equal(t, "60", consolidated["total_base_units"], "5 cajas x12 = 60 unidades base")
}
