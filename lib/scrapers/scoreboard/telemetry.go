package scoreboard

import (
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("scrapers/scoreboard")
