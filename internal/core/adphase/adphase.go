// Package adphase labels transcript passages with the narrative phase of an ad
//
// Marketing videos usually move through a pain point, the product reveal, its
// benefits and a closing promotion. Labels come from keyword tables; the phase
// with the most keyword hits wins and ties resolve in narrative order.
package adphase

import (
	"adscope/internal/core/normalize"
)

// Phase is one narrative segment of an ad
type Phase string

const (
	// None means no phase keyword fired
	None Phase = ""
	// Problem describes the viewer's pain point
	Problem Phase = "problem"
	// Product introduces the product
	Product Phase = "product"
	// Benefit lists effects and selling points
	Benefit Phase = "benefit"
	// Promotion carries price, discount or call to action
	Promotion Phase = "promotion"
)

// Order is the narrative order used for tie breaks
var Order = []Phase{Problem, Product, Benefit, Promotion}

// Table maps each phase to its trigger keywords
type Table map[Phase][]string

// DefaultTable covers English and Chinese marketing copy
func DefaultTable() Table {
	return Table{
		Problem: {
			"tired of", "struggle", "problem", "annoying", "worried", "embarrassing", "suffer",
			"烦恼", "困扰", "痛点", "难受", "尴尬", "担心", "总是",
		},
		Product: {
			"introducing", "meet", "our new", "this product", "formula", "made with", "ingredient",
			"推荐", "这款", "产品", "成分", "配方", "新品",
		},
		Benefit: {
			"results", "effect", "helps", "improve", "lasting", "in just", "you will feel",
			"效果", "改善", "持久", "好用", "提升", "轻松",
		},
		Promotion: {
			"discount", "% off", "coupon", "limited time", "buy now", "order today", "free shipping", "price",
			"优惠", "折扣", "限时", "下单", "立减", "包邮", "价格", "秒杀",
		},
	}
}

// Labeler assigns phases from a keyword table
type Labeler struct {
	table Table
	norm  *normalize.Normalizer
}

// New constructs a Labeler, nil table means DefaultTable
func New(t Table) *Labeler {
	if t == nil {
		t = DefaultTable()
	}
	return &Labeler{table: t, norm: normalize.New()}
}

// Label returns the best scoring phase for the given texts and its hit count
func (l *Labeler) Label(texts ...string) (Phase, int) {
	best, bestHits := None, 0
	for _, p := range Order {
		hits := 0
		for _, s := range texts {
			hits += l.norm.CountTerms(s, l.table[p])
		}
		if hits > bestHits {
			best, bestHits = p, hits
		}
	}
	return best, bestHits
}
