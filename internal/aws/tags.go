package aws

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	ecstypes "github.com/aws/aws-sdk-go-v2/service/ecs/types"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// AWSTag is a constraint for AWS tag types that have Key and Value fields.
type AWSTag interface {
	ecstypes.Tag | s3types.Tag
}

// tagKeyValue extracts key and value from different AWS tag types.
func tagKeyValue[T AWSTag](tag T) (key, value *string) {
	switch t := any(tag).(type) {
	case ecstypes.Tag:
		return t.Key, t.Value
	case s3types.Tag:
		return t.Key, t.Value
	}
	return nil, nil
}

// TagsToMap converts any AWS tag slice to a map[string]string.
func TagsToMap[T AWSTag](tags []T) map[string]string {
	if len(tags) == 0 {
		return nil
	}
	m := make(map[string]string, len(tags))
	for _, tag := range tags {
		key, value := tagKeyValue(tag)
		if key != nil {
			m[aws.ToString(key)] = aws.ToString(value)
		}
	}
	return m
}
