package router

import (
	"bytes"

	"github.com/bthrall/pistache/method"
)

// Param is a single named path segment captured during Match, e.g. the
// "id" in "/users/:id".
type Param struct {
	Key, Value string
}

// node is one segment of the route tree. Adapted from the teacher's
// server/router/radix.go Node, generalized to key handlers by HTTP
// method as well as path (the source only ever registered one handler
// per path).
type node struct {
	prefix   []byte
	children []node
	handlers map[method.Method]Handler
	isParam  bool
}

func newNode() node {
	return node{children: make([]node, 0)}
}

// insert links path (with optional ":name" parameter segments) to h for
// method m, creating intermediate nodes as needed.
func (n *node) insert(path []byte, m method.Method, h Handler) {
	if len(path) > 0 && path[0] == '/' {
		path = path[1:]
	}
	segments := bytes.Split(path, []byte("/"))
	cur := n

	for _, s := range segments {
		if len(s) == 0 {
			continue
		}

		isParam, prefix := len(s) > 0 && s[0] == ':', s
		if isParam {
			prefix = s[1:]
		}

		idx := -1
		for i := range cur.children {
			if bytes.Equal(cur.children[i].prefix, prefix) {
				idx = i
				break
			}
		}
		if idx == -1 {
			cur.children = append(cur.children, node{
				prefix:   append([]byte(nil), prefix...),
				isParam:  isParam,
				children: make([]node, 0),
			})
			idx = len(cur.children) - 1
		}
		cur = &cur.children[idx]
	}

	if cur.handlers == nil {
		cur.handlers = make(map[method.Method]Handler)
	}
	cur.handlers[m] = h
}

// match walks path against the tree, capturing param values into params,
// and returns the handler registered for m at the matched node, or nil
// on no match (404).
func (n *node) match(path []byte, m method.Method, params []Param) (Handler, []Param) {
	if len(path) > 0 && path[0] == '/' {
		path = path[1:]
	}
	cur := n

	for len(path) > 0 {
		found := false

		for i := range cur.children {
			c := &cur.children[i]

			if c.isParam {
				end := bytes.IndexByte(path, '/')
				if end == -1 {
					end = len(path)
				}
				params = append(params, Param{Key: string(c.prefix), Value: string(path[:end])})
				path = path[end:]
				cur = c
				found = true
				break
			}

			if bytes.HasPrefix(path, c.prefix) {
				rem := path[len(c.prefix):]
				if len(rem) == 0 || rem[0] == '/' {
					path = rem
					cur = c
					found = true
					break
				}
			}
		}
		if !found {
			return nil, params
		}
		if len(path) > 0 && path[0] == '/' {
			path = path[1:]
		}
	}

	h, ok := cur.handlers[m]
	if !ok {
		return nil, params
	}
	return h, params
}
