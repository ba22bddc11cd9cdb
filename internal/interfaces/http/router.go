package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Empaques-api/internal/application/packing"
	"github.com/jhoicas/Empaques-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC  *usecase.ProductUseCase
	Engine     *packing.EngineUseCase
	MutationUC *packing.TreeMutationUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)

	// Jerarquía de empaques (por producto)
	packingHandler := NewPackingHandler(deps.Engine, deps.MutationUC)
	products.Get("/:id/packaging", packingHandler.GetHierarchy)
	products.Get("/:id/packaging/validate", packingHandler.ValidateHierarchy)
	products.Post("/:id/packaging", packingHandler.AddNode)
	products.Post("/:id/picking/optimize", packingHandler.OptimizePicking)

	// Empaques (por nodo) y conversión
	pkg := api.Group("/packaging")
	pkg.Post("/convert", packingHandler.Convert)
	pkg.Put("/:id", packingHandler.UpdateNode)
	pkg.Delete("/:id", packingHandler.DeleteNode)

	// Escaneo de códigos de barras (índice global, activos)
	api.Get("/barcodes/:code", packingHandler.ScanBarcode)

	// Stock
	stockHandler := NewStockHandler(deps.Engine)
	api.Post("/stock", stockHandler.Upsert)
	products.Get("/:id/stock", stockHandler.ListByProduct)
	products.Get("/:id/stock/consolidated", stockHandler.GetConsolidated)
}
