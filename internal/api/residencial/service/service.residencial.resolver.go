package residencialsvc

import (
	"context"
	"strings"
	"sync"
	"time"

	authmodels "zentry_api/internal/api/auth/models"
	"zentry_api/internal/api/events"
	models "zentry_api/internal/api/residencial/models"
	"zentry_api/internal/global"
	"zentry_api/internal/logger"
	"zentry_api/internal/utility"

	"go.mongodb.org/mongo-driver/bson"
)

const snapshotCacheKey = "residenciales:snapshot"

// snapshotResidenciales es la foto inmutable del conjunto de residenciales
// con la que trabaja el resolver: mapeo docID→documento, código→docID y el
// hash de contenido para detectar si un evento de cambio realmente cambió algo.
type snapshotResidenciales struct {
	porDocID  map[string]models.Residencial
	porCodigo map[string]string
	hash      string
}

// ResolverResidencial resuelve la identidad de un residencial a partir de
// las distintas formas en que los documentos históricos la guardan: código
// de negocio (residencialID), código legado (residencialId) o el _id del
// documento (residencialDocId). Nunca devuelve error: en el peor caso
// responde cadena vacía o un nombre de relleno.
type ResolverResidencial struct {
	cache *utility.Cache
	mu    sync.Mutex // serializa recargas del snapshot
}

var (
	resolverInstance *ResolverResidencial
	resolverOnce     sync.Once
)

// GetResolver devuelve el resolver singleton. En la primera llamada se
// registra como oyente de cambios de datos para invalidar su snapshot
// cuando la colección de residenciales cambia.
func GetResolver() *ResolverResidencial {
	resolverOnce.Do(func() {
		resolverInstance = &ResolverResidencial{
			cache: utility.NewCache(10*time.Minute, 15*time.Minute),
		}
		events.OnDataChanged(resolverInstance.onDataChanged)
	})
	return resolverInstance
}

// GetResidencialIdFromUser resuelve el código de negocio del residencial
// del usuario. Cadena de resolución: residencialID → residencialId →
// residencialDocId (vía mapeo) → "".
func (r *ResolverResidencial) GetResidencialIdFromUser(u *authmodels.Usuario) string {
	if u == nil {
		return ""
	}
	if u.ResidencialID != "" {
		return u.ResidencialID
	}
	if u.ResidencialIDAlt != "" {
		return u.ResidencialIDAlt
	}
	if u.ResidencialDocID != "" {
		snap := r.getSnapshot(context.Background())
		if doc, ok := snap.porDocID[u.ResidencialDocID]; ok {
			return doc.ResidencialID
		}
	}
	return ""
}

// GetResidencialNombre resuelve el nombre para mostrar de un residencial
// a partir de cualquiera de sus identificadores. Cadena de resolución:
// docID directo → código de negocio → barrido inverso → coincidencia sin
// distinguir mayúsculas → nombre de relleno con el ID truncado.
func (r *ResolverResidencial) GetResidencialNombre(id string) string {
	if id == "" {
		return "Residencial"
	}

	snap := r.getSnapshot(context.Background())

	if doc, ok := snap.porDocID[id]; ok && doc.Nombre != "" {
		return doc.Nombre
	}

	if docID, ok := snap.porCodigo[id]; ok {
		if doc, ok := snap.porDocID[docID]; ok && doc.Nombre != "" {
			return doc.Nombre
		}
	}

	// Barrido inverso: códigos que el mapa directo no cubre (duplicados
	// con distinta capitalización) y coincidencia case-insensitive
	for _, doc := range snap.porDocID {
		if doc.Nombre == "" {
			continue
		}
		if doc.ResidencialID == id {
			return doc.Nombre
		}
	}
	for docID, doc := range snap.porDocID {
		if doc.Nombre == "" {
			continue
		}
		if strings.EqualFold(doc.ResidencialID, id) || strings.EqualFold(docID, id) {
			return doc.Nombre
		}
	}

	corto := id
	if len(corto) > 8 {
		corto = corto[:8]
	}
	return "Residencial " + corto
}

// GetDocIDFromCodigo devuelve el _id (hex) del residencial con el código
// de negocio dado, o cadena vacía si no existe. Lo usan los dominios que
// trabajan con subcolecciones por residencial.
func (r *ResolverResidencial) GetDocIDFromCodigo(codigo string) string {
	if codigo == "" {
		return ""
	}
	snap := r.getSnapshot(context.Background())
	if docID, ok := snap.porCodigo[codigo]; ok {
		return docID
	}
	for docID, doc := range snap.porDocID {
		if strings.EqualFold(doc.ResidencialID, codigo) {
			return docID
		}
	}
	// Puede venir ya como docID
	if _, ok := snap.porDocID[codigo]; ok {
		return codigo
	}
	return ""
}

// Invalidate descarta el snapshot; la próxima consulta recarga desde Mongo.
func (r *ResolverResidencial) Invalidate() {
	r.cache.Delete(snapshotCacheKey)
}

// getSnapshot devuelve el snapshot vigente, cargándolo si hace falta.
func (r *ResolverResidencial) getSnapshot(ctx context.Context) *snapshotResidenciales {
	if cached, ok := r.cache.Get(snapshotCacheKey); ok {
		if snap, ok := cached.(*snapshotResidenciales); ok {
			return snap
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Otro goroutine pudo haberlo cargado mientras esperábamos el lock
	if cached, ok := r.cache.Get(snapshotCacheKey); ok {
		if snap, ok := cached.(*snapshotResidenciales); ok {
			return snap
		}
	}

	snap := r.loadSnapshot(ctx)
	r.cache.Set(snapshotCacheKey, snap)
	return snap
}

// loadSnapshot lee todos los residenciales y construye los mapeos.
// Ante cualquier error devuelve un snapshot vacío; el resolver degrada
// a sus fallbacks en lugar de propagar el error.
func (r *ResolverResidencial) loadSnapshot(ctx context.Context) *snapshotResidenciales {
	snap := &snapshotResidenciales{
		porDocID:  make(map[string]models.Residencial),
		porCodigo: make(map[string]string),
	}

	col, exist := global.RegistryCollections.Get(global.ColNames.Residenciales)
	if !exist {
		logger.GetAppLogger().Warn("Resolver: la colección de residenciales no está registrada")
		return snap
	}

	cursor, err := col.Find(ctx, bson.M{})
	if err != nil {
		logger.GetAppLogger().WithError(err).Error("Resolver: error al leer los residenciales")
		return snap
	}
	defer cursor.Close(ctx)

	var docs []models.Residencial
	if err := cursor.All(ctx, &docs); err != nil {
		logger.GetAppLogger().WithError(err).Error("Resolver: error al decodificar los residenciales")
		return snap
	}

	return buildSnapshot(docs)
}

// buildSnapshot construye los mapeos y el hash de contenido a partir de
// la lista de residenciales.
func buildSnapshot(docs []models.Residencial) *snapshotResidenciales {
	snap := &snapshotResidenciales{
		porDocID:  make(map[string]models.Residencial, len(docs)),
		porCodigo: make(map[string]string, len(docs)),
		hash:      utility.ContentHash(docs),
	}
	for _, doc := range docs {
		docID := doc.ID.Hex()
		snap.porDocID[docID] = doc
		if doc.ResidencialID != "" {
			snap.porCodigo[doc.ResidencialID] = docID
		}
	}
	return snap
}

// setSnapshot fija el snapshot directamente (recargas por evento).
func (r *ResolverResidencial) setSnapshot(snap *snapshotResidenciales) {
	r.cache.Set(snapshotCacheKey, snap)
}

// onDataChanged reacciona a los cambios de la colección de residenciales.
// Recarga el snapshot y compara el hash de contenido: si los datos no
// cambiaron de verdad, el snapshot vigente se conserva y no hay
// invalidación en cascada.
func (r *ResolverResidencial) onDataChanged(ctx context.Context, e events.DataChangeEvent) {
	if e.CollectionName != global.ColNames.Residenciales {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	nuevo := r.loadSnapshot(ctx)

	if cached, ok := r.cache.Get(snapshotCacheKey); ok {
		if actual, ok := cached.(*snapshotResidenciales); ok && actual.hash == nuevo.hash {
			return
		}
	}

	r.cache.Set(snapshotCacheKey, nuevo)
	logger.GetAppLogger().Debug("Resolver: snapshot de residenciales actualizado")
}
