package component

type Health struct {
	Current float64
	Max     float64
	Dead    bool
}

var HealthComponent = NewComponent[Health]()
