package lib

import (
	"testing"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/stretchr/testify/assert"
)

func TestSchedulerJobRegistration(t *testing.T) {
	sched, err := gocron.NewScheduler()
	assert.Nil(t, err)
	NewScheduler(sched)
	t.Cleanup(func() {
		sched.Shutdown()
		NewScheduler(nil)
	})

	id, err := CreateCronJob(func() {}, time.Minute)
	assert.Nil(t, err)
	assert.NotNil(t, id)

	oneTimeId, err := CreateOneTimeCronJob(
		gocron.OneTimeJob(gocron.OneTimeJobStartDateTime(time.Now().Add(time.Hour))),
		gocron.NewTask(func() {}),
	)
	assert.Nil(t, err)
	assert.NotNil(t, oneTimeId)
	assert.NotEqual(t, *id, *oneTimeId)

	got, err := GetScheduler()
	assert.Nil(t, err)
	assert.Len(t, got.Jobs(), 2)
}
