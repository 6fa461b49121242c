package exams

import "github.com/Elias0099/examenes-api/internal/quiz/categories"

// Examen is a quiz belonging to one category.
type Examen struct {
	ExamenID          int64                `json:"examenId"`
	Titulo            string               `json:"titulo"`
	Descripcion       string               `json:"descripcion"`
	PuntosMaximos     string               `json:"puntosMaximos"`
	NumeroDePreguntas string               `json:"numeroDePreguntas"`
	Activo            bool                 `json:"activo"`
	Categoria         categories.Categoria `json:"categoria"`
}
