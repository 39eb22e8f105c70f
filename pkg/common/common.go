package common

import (
	"github.com/bwmarrin/snowflake"
)

var idNode *snowflake.Node

func init() {
	var err error
	idNode, err = snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
}

// UUIDint64 returns a new unique int64 identifier.
func UUIDint64() int64 {
	return idNode.Generate().Int64()
}
