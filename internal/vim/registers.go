package vim

// Register holds a slot's text along with its linewise flag, governing
// whether p/P paste it as whole lines or inline.
type Register struct {
	Text     string
	Linewise bool
}

// RegisterFile models the heterogeneous register set as named slots rather
// than a single tagged variant per slot; reads/writes dispatch on name so
// that callers never need to know which reserved register they're touching.
type RegisterFile struct {
	named    map[string]Register
	numbered [10]Register // 0 = last yank, 1..9 = delete ring
	unnamed  Register
	small    Register // "-" small (single-line) delete
	expr     string   // source text stored by "=, evaluated lazily on read
	search   string   // "/ last search pattern
	lastIns  string   // ". last inserted text
}

// NewRegisterFile returns an empty register set.
func NewRegisterFile() *RegisterFile {
	return &RegisterFile{named: make(map[string]Register)}
}

// Read returns the contents of the named register, applying per-register
// read semantics (the black hole always reads empty, the expression
// register evaluates its stored source).
func (r *RegisterFile) Read(name string, eval func(string) string) Register {
	switch name {
	case "", `"`:
		return r.unnamed
	case "_":
		return Register{}
	case "-":
		return r.small
	case "=":
		if eval == nil {
			return Register{}
		}
		return Register{Text: eval(r.expr)}
	case "/":
		return Register{Text: r.search}
	case ".":
		return Register{Text: r.lastIns}
	}
	if name >= "0" && name <= "9" {
		return r.numbered[name[0]-'0']
	}
	if name >= "a" && name <= "z" {
		return r.named[name]
	}
	if name >= "A" && name <= "Z" {
		return r.named[lowerRegName(name)]
	}
	return Register{}
}

func lowerRegName(name string) string {
	b := []byte(name)
	b[0] += 'a' - 'A'
	return string(b)
}

// WriteYank records a yank: always updates the unnamed register and "0,
// and additionally the explicitly requested register if any.
func (r *RegisterFile) WriteYank(target string, text string, linewise bool) {
	reg := Register{Text: text, Linewise: linewise}
	r.writeTarget(target, reg)
	r.unnamed = reg
	r.numbered[0] = reg
}

// WriteDelete records a delete. Non-linewise single-line deletes update "
// and "-; linewise or multi-line deletes update " and shift the 1-9 ring.
// Writes to the black hole register are discarded entirely.
func (r *RegisterFile) WriteDelete(target string, text string, linewise, multiline bool) {
	reg := Register{Text: text, Linewise: linewise}

	if target == "_" {
		return
	}
	if target != "" && target != `"` {
		r.writeTarget(target, reg)
		r.unnamed = reg
		return
	}

	r.unnamed = reg
	if linewise || multiline {
		for i := 9; i > 1; i-- {
			r.numbered[i] = r.numbered[i-1]
		}
		r.numbered[1] = reg
	} else {
		r.small = reg
	}
}

// writeTarget applies the write-side rules for an explicitly named target
// register: lowercase replaces, uppercase appends to the lowercase slot.
func (r *RegisterFile) writeTarget(target string, reg Register) {
	switch target {
	case "", `"`:
		r.unnamed = reg
	case "_":
		// discarded
	case "=":
		r.expr = reg.Text
	case "/":
		r.search = reg.Text
	case ".":
		r.lastIns = reg.Text
	default:
		if target >= "0" && target <= "9" {
			r.numbered[target[0]-'0'] = reg
			return
		}
		if target >= "A" && target <= "Z" {
			lname := lowerRegName(target)
			existing := r.named[lname]
			merged := existing.Text + reg.Text
			r.named[lname] = Register{Text: merged, Linewise: existing.Linewise || reg.Linewise}
			return
		}
		r.named[target] = reg
	}
}

// SetSearch records the last search pattern into the "/ register.
func (r *RegisterFile) SetSearch(pattern string) { r.search = pattern }

// SetLastInsert records the last inserted text into the ". register.
func (r *RegisterFile) SetLastInsert(text string) { r.lastIns = text }

// SetExpr stores the source text for the "= register (used by <C-r>=).
func (r *RegisterFile) SetExpr(src string) { r.expr = src }
