package residencialsvc

import (
	"testing"

	authmodels "zentry_api/internal/api/auth/models"
	models "zentry_api/internal/api/residencial/models"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// snapshotDePrueba fija un snapshot conocido en el resolver para probar
// las cadenas de resolución sin tocar la base de datos.
func snapshotDePrueba(t *testing.T, docs []models.Residencial) *ResolverResidencial {
	t.Helper()
	r := GetResolver()
	r.setSnapshot(buildSnapshot(docs))
	return r
}

func TestGetResidencialIdFromUser_Cadena(t *testing.T) {
	docID := primitive.NewObjectID()
	r := snapshotDePrueba(t, []models.Residencial{
		{ID: docID, ResidencialID: "LOMAS-01", Nombre: "Lomas del Norte"},
	})

	t.Run("usuario nil", func(t *testing.T) {
		assert.Equal(t, "", r.GetResidencialIdFromUser(nil))
	})

	t.Run("campo canónico", func(t *testing.T) {
		u := &authmodels.Usuario{ResidencialID: "LOMAS-01", ResidencialIDAlt: "OTRO"}
		assert.Equal(t, "LOMAS-01", r.GetResidencialIdFromUser(u))
	})

	t.Run("campo legado", func(t *testing.T) {
		u := &authmodels.Usuario{ResidencialIDAlt: "LOMAS-01"}
		assert.Equal(t, "LOMAS-01", r.GetResidencialIdFromUser(u))
	})

	t.Run("docID vía snapshot", func(t *testing.T) {
		u := &authmodels.Usuario{ResidencialDocID: docID.Hex()}
		assert.Equal(t, "LOMAS-01", r.GetResidencialIdFromUser(u))
	})

	t.Run("sin membresía", func(t *testing.T) {
		assert.Equal(t, "", r.GetResidencialIdFromUser(&authmodels.Usuario{}))
	})

	t.Run("docID desconocido", func(t *testing.T) {
		u := &authmodels.Usuario{ResidencialDocID: primitive.NewObjectID().Hex()}
		assert.Equal(t, "", r.GetResidencialIdFromUser(u))
	})
}

func TestGetResidencialNombre_Cadena(t *testing.T) {
	docID := primitive.NewObjectID()
	r := snapshotDePrueba(t, []models.Residencial{
		{ID: docID, ResidencialID: "LOMAS-01", Nombre: "Lomas del Norte"},
	})

	t.Run("por docID", func(t *testing.T) {
		assert.Equal(t, "Lomas del Norte", r.GetResidencialNombre(docID.Hex()))
	})

	t.Run("por código de negocio", func(t *testing.T) {
		assert.Equal(t, "Lomas del Norte", r.GetResidencialNombre("LOMAS-01"))
	})

	t.Run("código sin distinguir mayúsculas", func(t *testing.T) {
		assert.Equal(t, "Lomas del Norte", r.GetResidencialNombre("lomas-01"))
	})

	t.Run("id vacío", func(t *testing.T) {
		assert.Equal(t, "Residencial", r.GetResidencialNombre(""))
	})

	t.Run("id desconocido largo se trunca", func(t *testing.T) {
		assert.Equal(t, "Residencial 64aabbcc", r.GetResidencialNombre("64aabbccddeeff00112233"))
	})

	t.Run("id desconocido corto completo", func(t *testing.T) {
		assert.Equal(t, "Residencial XYZ", r.GetResidencialNombre("XYZ"))
	})
}

func TestGetResidencialNombre_NombreVacioNoGana(t *testing.T) {
	conNombre := primitive.NewObjectID()
	sinNombre := primitive.NewObjectID()
	r := snapshotDePrueba(t, []models.Residencial{
		{ID: sinNombre, ResidencialID: "VACIO-01"},
		{ID: conNombre, ResidencialID: "LOMAS-01", Nombre: "Lomas del Norte"},
	})

	// El documento sin nombre cae al nombre de relleno en vez de devolver vacío
	assert.Equal(t, "Residencial VACIO-01", r.GetResidencialNombre("VACIO-01"))
	assert.Equal(t, "Lomas del Norte", r.GetResidencialNombre("LOMAS-01"))
}

func TestGetDocIDFromCodigo(t *testing.T) {
	docID := primitive.NewObjectID()
	r := snapshotDePrueba(t, []models.Residencial{
		{ID: docID, ResidencialID: "LOMAS-01", Nombre: "Lomas del Norte"},
	})

	t.Run("código exacto", func(t *testing.T) {
		assert.Equal(t, docID.Hex(), r.GetDocIDFromCodigo("LOMAS-01"))
	})

	t.Run("código sin distinguir mayúsculas", func(t *testing.T) {
		assert.Equal(t, docID.Hex(), r.GetDocIDFromCodigo("Lomas-01"))
	})

	t.Run("docID pasa directo", func(t *testing.T) {
		assert.Equal(t, docID.Hex(), r.GetDocIDFromCodigo(docID.Hex()))
	})

	t.Run("desconocido", func(t *testing.T) {
		assert.Equal(t, "", r.GetDocIDFromCodigo("NO-EXISTE"))
	})

	t.Run("vacío", func(t *testing.T) {
		assert.Equal(t, "", r.GetDocIDFromCodigo(""))
	})
}

func TestBuildSnapshot_Hash(t *testing.T) {
	docID := primitive.NewObjectID()
	docs := []models.Residencial{{ID: docID, ResidencialID: "LOMAS-01", Nombre: "Lomas del Norte"}}

	a := buildSnapshot(docs)
	b := buildSnapshot(docs)
	assert.Equal(t, a.hash, b.hash, "el mismo contenido debe producir el mismo hash")

	docs[0].Nombre = "Lomas del Sur"
	c := buildSnapshot(docs)
	assert.NotEqual(t, a.hash, c.hash, "contenido distinto debe producir hash distinto")
}

func TestBuildSnapshot_CodigoVacioNoSeIndexa(t *testing.T) {
	docID := primitive.NewObjectID()
	snap := buildSnapshot([]models.Residencial{{ID: docID, Nombre: "Sin código"}})

	assert.Len(t, snap.porDocID, 1)
	assert.Empty(t, snap.porCodigo, "los residenciales sin código de negocio no entran al mapeo código→docID")
}
