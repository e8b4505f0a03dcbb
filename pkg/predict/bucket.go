package predict

const (
	defaultLowCutoff  = 1100
	defaultHighCutoff = 2000
	defaultBucketSize = 100
)

// BucketConfig maps integer ratings onto the model's 11 discrete skill
// buckets. Ratings below LowCutoff fall in bucket 0, ratings at or above
// HighCutoff in bucket 10, everything between in width-sized steps.
type BucketConfig struct {
	LowCutoff  int
	HighCutoff int
	Width      int
}

func DefaultBuckets() BucketConfig {
	return BucketConfig{
		LowCutoff:  defaultLowCutoff,
		HighCutoff: defaultHighCutoff,
		Width:      defaultBucketSize,
	}
}

func (c BucketConfig) Bucket(rating int) int {
	if rating < c.LowCutoff {
		return 0
	}
	if rating >= c.HighCutoff {
		return 10
	}
	return (rating-c.LowCutoff)/c.Width + 1
}

// SkillBucket maps a rating with the default cutoffs.
func SkillBucket(rating int) int {
	return DefaultBuckets().Bucket(rating)
}
