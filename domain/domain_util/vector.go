package domain_util

import "math"

// L2Norm 向量的欧几里得范数
func L2Norm(vec []float64) float64 {
	var sum float64
	for _, v := range vec {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// L2Normalize 返回单位向量副本；零向量或含非法值时原样返回副本（调用方自行降级）
func L2Normalize(vec []float64) []float64 {
	out := make([]float64, len(vec))
	norm := L2Norm(vec)
	if norm == 0 || math.IsNaN(norm) || math.IsInf(norm, 0) {
		copy(out, vec)
		return out
	}
	for i, v := range vec {
		out[i] = v / norm
	}
	return out
}

// CosineSimilarity 两向量的余弦相似度，范围[-1,1]
// 长度不一致或任一范数为零时返回0（维度校验由调用方显式完成）
func CosineSimilarity(a, b []float64) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	denom := math.Sqrt(normA) * math.Sqrt(normB)
	if denom == 0 || math.IsNaN(denom) {
		return 0
	}
	return dot / denom
}

// SafeMean 向量组的算术均值；空集合返回dim维零向量
// 结果中的NaN/Inf一律替换为0，保证空信号不会污染下游打分
func SafeMean(vectors [][]float64, dim int) []float64 {
	out := make([]float64, dim)
	if len(vectors) == 0 {
		return out
	}

	for _, vec := range vectors {
		for i := 0; i < dim && i < len(vec); i++ {
			out[i] += vec[i]
		}
	}

	n := float64(len(vectors))
	for i := range out {
		out[i] /= n
	}
	return Sanitize(out)
}

// Sanitize 将向量内的NaN/±Inf就地替换为0并返回
func Sanitize(vec []float64) []float64 {
	for i, v := range vec {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			vec[i] = 0
		}
	}
	return vec
}

// IsZero 向量的所有分量均为0
func IsZero(vec []float64) bool {
	for _, v := range vec {
		if v != 0 {
			return false
		}
	}
	return true
}
