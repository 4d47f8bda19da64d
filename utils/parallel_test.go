package utils

import (
	"context"
	"sync/atomic"
	"testing"

	"go.viam.com/test"
)

func TestGroupWorkParallelVisitsEveryItem(t *testing.T) {
	for _, totalSize := range []int{1, 2, 3, ParallelFactor, ParallelFactor + 1, 1000} {
		visits := make([]int32, totalSize)
		var groups int
		err := GroupWorkParallel(
			context.Background(),
			totalSize,
			func(numGroups int) {
				groups = numGroups
			},
			func(groupNum, groupSize, from, to int) (MemberWorkFunc, GroupWorkDoneFunc) {
				return func(memberNum, workNum int) {
					atomic.AddInt32(&visits[workNum], 1)
				}, nil
			},
		)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, groups, test.ShouldBeLessThanOrEqualTo, totalSize)
		for _, v := range visits {
			test.That(t, v, test.ShouldEqual, int32(1))
		}
	}
}

func TestGroupWorkParallelGroupDone(t *testing.T) {
	var done int32
	var numGroups int
	err := GroupWorkParallel(
		context.Background(),
		100,
		func(n int) { numGroups = n },
		func(groupNum, groupSize, from, to int) (MemberWorkFunc, GroupWorkDoneFunc) {
			return nil, func() { atomic.AddInt32(&done, 1) }
		},
	)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, int(done), test.ShouldEqual, numGroups)
}

func TestGroupWorkParallelPanic(t *testing.T) {
	err := GroupWorkParallel(
		context.Background(),
		10,
		nil,
		func(groupNum, groupSize, from, to int) (MemberWorkFunc, GroupWorkDoneFunc) {
			return func(memberNum, workNum int) {
				if workNum == 7 {
					panic("bad block")
				}
			}, nil
		},
	)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "bad block")
}

func TestGroupWorkParallelCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := GroupWorkParallel(ctx, 10, nil, func(groupNum, groupSize, from, to int) (MemberWorkFunc, GroupWorkDoneFunc) {
		called = true
		return nil, nil
	})
	test.That(t, err, test.ShouldEqual, context.Canceled)
	test.That(t, called, test.ShouldBeFalse)
}
