package concurrent

import "lintang/congestionnav/pkg/simulation"

// SaveRoundsJobItem round results that share one storage key.
type SaveRoundsJobItem struct {
	KeyStr string
	ValArr []simulation.RoundResult
}

type JobI interface {
	SaveRoundsJobItem
}

type Job[T JobI] struct {
	ID      int
	JobItem T
}

type JobFunc[T JobI, G any] func(job T) G
