package questions

// Pregunta is a single exam question. Respuesta holds the correct answer and
// is policy-gated on the way out: handlers serialize QuestionView, never
// Pregunta, so whether the answer leaves the system is decided in one place.
type Pregunta struct {
	PreguntaID    int64
	Contenido     string
	Imagen        string
	Opcion1       string
	Opcion2       string
	Opcion3       string
	Opcion4       string
	Respuesta     string
	RespuestaDada string
	ExamenID      int64
}
