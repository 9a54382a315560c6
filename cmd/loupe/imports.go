package main

// Resource packages register themselves with the global registry from init().
import (
	_ "github.com/loupecli/loupe/custom/ecs/clusters"
	_ "github.com/loupecli/loupe/custom/ecs/services"
	_ "github.com/loupecli/loupe/custom/ecs/task-definitions"
	_ "github.com/loupecli/loupe/custom/ecs/tasks"
	_ "github.com/loupecli/loupe/custom/s3/buckets"
)
