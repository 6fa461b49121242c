package categories

// Categoria groups exams under a titled heading.
type Categoria struct {
	CategoriaID int64  `json:"categoriaId"`
	Titulo      string `json:"titulo"`
	Descripcion string `json:"descripcion"`
}
