package ports

// Metrics contadores de negocio; la implementación vive en infrastructure/metrics.
type Metrics interface {
	TransicionAplicada(desde, hacia string)
	URLFirmada(metodo, resultado string)
	Screening(clasificacion string)
}

// NopMetrics descarta todo.
type NopMetrics struct{}

func (NopMetrics) TransicionAplicada(string, string) {}
func (NopMetrics) URLFirmada(string, string)         {}
func (NopMetrics) Screening(string)                  {}
