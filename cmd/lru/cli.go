package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/pyropy/lru/core/config"
	"github.com/pyropy/lru/core/store"
	"github.com/pyropy/lru/lib/cache"
	lru "github.com/pyropy/lru/lib/lru_cache"
	"github.com/urfave/cli/v2"
)

var demoCmd = &cli.Command{
	Name:  "demo",
	Usage: "Run the capacity 2 walkthrough and print every step",
	Action: func(ctx *cli.Context) error {
		w := ctx.App.Writer

		c, err := lru.NewIntCache(2)
		if err != nil {
			return err
		}

		put := func(k, v int) {
			c.Put(k, v)
			fmt.Fprintf(w, "put(%d, %d)\torder=%v\n", k, v, c.Keys())
		}
		get := func(k int) {
			v := c.Get(k)
			fmt.Fprintf(w, "get(%d) = %d\torder=%v\n", k, v, c.Keys())
		}

		put(1, 1)
		put(2, 2)
		get(1)
		put(3, 3)
		get(2)
		put(4, 4)
		get(1)
		get(3)
		get(4)

		return nil
	},
}

func replayCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "replay",
		Usage:     "Apply a script of put/get/peek/del/keys operations to a fresh cache",
		ArgsUsage: "[script file, defaults to stdin]",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "capacity",
				Value: cfg.Cache.Capacity,
				Usage: "Cache capacity",
			},
		},
		Action: func(ctx *cli.Context) error {
			in := ctx.App.Reader
			if path := ctx.Args().First(); path != "" {
				f, err := os.Open(path)
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			c, err := lru.New[string, string](ctx.Int("capacity"))
			if err != nil {
				return err
			}

			return replay(c, in, ctx.App.Writer)
		},
	}
}

func replay(c *lru.LRU[string, string], in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	line := 0

	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		op, args := strings.ToLower(fields[0]), fields[1:]
		switch {
		case op == "put" && len(args) == 2:
			if c.Put(args[0], args[1]) {
				fmt.Fprintln(out, "OK (evicted)")
			} else {
				fmt.Fprintln(out, "OK")
			}
		case op == "get" && len(args) == 1:
			printLookup(out, c.Get, args[0])
		case op == "peek" && len(args) == 1:
			printLookup(out, c.Peek, args[0])
		case op == "del" && len(args) == 1:
			if c.Remove(args[0]) {
				fmt.Fprintln(out, "1")
			} else {
				fmt.Fprintln(out, "0")
			}
		case op == "keys" && len(args) == 0:
			fmt.Fprintln(out, strings.Join(c.Keys(), " "))
		default:
			return fmt.Errorf("line %d: invalid operation %q", line, scanner.Text())
		}
	}

	return scanner.Err()
}

func printLookup(out io.Writer, lookup func(string) (string, bool), key string) {
	v, exists := lookup(key)
	if !exists {
		fmt.Fprintln(out, "(nil)")
		return
	}

	fmt.Fprintln(out, v)
}

func storeCmd(cfg *config.Config) *cli.Command {
	withStore := func(ctx *cli.Context, fn func(context.Context, *store.CachedStore) error) error {
		s, err := store.OpenLevelDB(ctx.String("store"), ctx.Int("capacity"), store.Options{})
		if err != nil {
			return err
		}
		defer s.Close()

		return fn(ctx.Context, s)
	}

	return &cli.Command{
		Name:  "store",
		Usage: "Read and write a leveldb store through the cache",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "store",
				Value: cfg.Store.Path,
				Usage: "Path to the leveldb directory",
			},
			&cli.IntFlag{
				Name:  "capacity",
				Value: cfg.Cache.Capacity,
				Usage: "Cache capacity",
			},
		},
		Subcommands: []*cli.Command{
			{
				Name:      "get",
				ArgsUsage: "<key>",
				Action: func(ctx *cli.Context) error {
					if ctx.NArg() != 1 {
						return fmt.Errorf("get expects 1 argument, got %d", ctx.NArg())
					}
					return withStore(ctx, func(cctx context.Context, s *store.CachedStore) error {
						v, err := s.Get(cctx, ctx.Args().Get(0))
						if err != nil {
							return err
						}
						fmt.Fprintln(ctx.App.Writer, string(v))
						return nil
					})
				},
			},
			{
				Name:      "put",
				ArgsUsage: "<key> <value>",
				Action: func(ctx *cli.Context) error {
					if ctx.NArg() != 2 {
						return fmt.Errorf("put expects 2 arguments, got %d", ctx.NArg())
					}
					return withStore(ctx, func(cctx context.Context, s *store.CachedStore) error {
						return s.Put(cctx, ctx.Args().Get(0), []byte(ctx.Args().Get(1)))
					})
				},
			},
			{
				Name:      "del",
				ArgsUsage: "<key>",
				Action: func(ctx *cli.Context) error {
					if ctx.NArg() != 1 {
						return fmt.Errorf("del expects 1 argument, got %d", ctx.NArg())
					}
					return withStore(ctx, func(cctx context.Context, s *store.CachedStore) error {
						return s.Delete(cctx, ctx.Args().Get(0))
					})
				},
			},
		},
	}
}

func fillCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "fill",
		Usage: "Insert random keys into a sharded cache and report what survived",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "n",
				Value: 1000,
				Usage: "Number of keys to insert",
			},
			&cli.IntFlag{
				Name:  "capacity",
				Value: cfg.Buffer.Capacity,
				Usage: "Total cache capacity",
			},
			&cli.IntFlag{
				Name:  "shards",
				Value: cfg.Cache.Shards,
				Usage: "Number of shards",
			},
		},
		Action: func(ctx *cli.Context) error {
			evicted := 0
			c, err := cache.NewSharded[string, string](ctx.Int("capacity"), ctx.Int("shards"), cache.StringHasher,
				lru.WithEvictCallback(func(string, string) { evicted++ }),
			)
			if err != nil {
				return err
			}

			n := ctx.Int("n")
			for i := 0; i < n; i++ {
				c.Put(uuid.NewString(), fmt.Sprint(i))
			}

			log.Infow("fill", "inserted", n, "len", c.Len(), "cap", c.Cap(), "shards", c.Shards(), "evicted", evicted)
			fmt.Fprintf(ctx.App.Writer, "inserted=%d len=%d cap=%d evicted=%d\n", n, c.Len(), c.Cap(), evicted)

			return nil
		},
	}
}
