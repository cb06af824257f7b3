package witness

import "time"

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Metrics interface {
		ObserveBuild(kind Kind, err error, started time.Time)
	}
)
