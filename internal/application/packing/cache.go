package packing

import (
	"sync"
	"time"

	"github.com/jhoicas/Empaques-api/internal/domain/entity"
	domainpacking "github.com/jhoicas/Empaques-api/internal/domain/packing"
)

// SnapshotCache caché de instantáneas del árbol por producto, más el
// índice global de códigos de barras. TTL controlado por el llamador e
// invalidación explícita en cada mutación del árbol; no hay memoización
// implícita.
type SnapshotCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	trees   map[string]treeEntry
	barcode *barcodeEntry
}

type treeEntry struct {
	nodes     []*entity.PackagingNode
	expiresAt time.Time
}

type barcodeEntry struct {
	index     *domainpacking.BarcodeIndex
	expiresAt time.Time
}

// NewSnapshotCache construye la caché. ttl <= 0 desactiva el cacheo
// (todo Get falla y se lee siempre de almacenamiento).
func NewSnapshotCache(ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{
		ttl:   ttl,
		trees: make(map[string]treeEntry),
	}
}

// GetTree devuelve la instantánea cacheada del producto, si sigue vigente.
func (c *SnapshotCache) GetTree(productID string) ([]*entity.PackagingNode, bool) {
	if c.ttl <= 0 {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.trees[productID]
	if !ok || time.Now().After(entry.expiresAt) {
		delete(c.trees, productID)
		return nil, false
	}
	return entry.nodes, true
}

// PutTree guarda la instantánea del producto.
func (c *SnapshotCache) PutTree(productID string, nodes []*entity.PackagingNode) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.trees[productID] = treeEntry{nodes: nodes, expiresAt: time.Now().Add(c.ttl)}
}

// GetBarcodeIndex devuelve el índice global vigente, si existe.
func (c *SnapshotCache) GetBarcodeIndex() (*domainpacking.BarcodeIndex, bool) {
	if c.ttl <= 0 {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.barcode == nil || time.Now().After(c.barcode.expiresAt) {
		c.barcode = nil
		return nil, false
	}
	return c.barcode.index, true
}

// PutBarcodeIndex guarda el índice global de códigos.
func (c *SnapshotCache) PutBarcodeIndex(index *domainpacking.BarcodeIndex) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.barcode = &barcodeEntry{index: index, expiresAt: time.Now().Add(c.ttl)}
}

// Invalidate descarta la instantánea del producto y el índice de códigos.
// Se llama tras cualquier mutación del árbol de ese producto.
func (c *SnapshotCache) Invalidate(productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.trees, productID)
	c.barcode = nil
}
