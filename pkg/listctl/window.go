package listctl

// Ellipsis 页码窗口中的省略号占位
const Ellipsis = 0

// PageWindow 生成分页按钮序列：首页、末页以及当前页前后 span 页，
// 中间断开的地方用 Ellipsis 占位。例如 current=6,total=20,span=1 →
// [1 0 5 6 7 0 20]。
func PageWindow(current, total, span int) []int {
	if total <= 0 {
		return []int{}
	}
	if span < 0 {
		span = 0
	}
	if current < 1 {
		current = 1
	}
	if current > total {
		current = total
	}

	lo := max(current-span, 1)
	hi := min(current+span, total)

	pages := make([]int, 0, 2*span+5)
	if lo > 1 {
		pages = append(pages, 1)
		if lo == 3 {
			pages = append(pages, 2)
		} else if lo > 3 {
			pages = append(pages, Ellipsis)
		}
	}
	for p := lo; p <= hi; p++ {
		pages = append(pages, p)
	}
	if hi < total {
		if hi == total-2 {
			pages = append(pages, total-1)
		} else if hi < total-2 {
			pages = append(pages, Ellipsis)
		}
		pages = append(pages, total)
	}
	return pages
}
