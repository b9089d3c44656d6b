package recsys_models

// 参与min-max归一化的Track数值字段（bson字段名）
const (
	FieldYear            = "year"
	FieldDuration        = "duration"
	FieldPlayCounts      = "total_play_counts"
	FieldListenersCounts = "total_listeners_counts"
)

// NumericFields 归一化字段的固定顺序，与向量尾部数值段一致（popularity单独处理）
var NumericFields = []string{FieldYear, FieldDuration, FieldPlayCounts, FieldListenersCounts}

// FeatureRange 单个数值字段在全库范围内的最小/最大值
type FeatureRange struct {
	Min float64 `bson:"min_val"`
	Max float64 `bson:"max_val"`
}
