package doublebuf

import (
	"fmt"

	"github.com/coalfire-dev/doublebuf/strategy"
)

func Example() {
	reader, writer := Pair[[]string](strategy.SingleThreaded(), nil, nil)

	// empty read
	guard, _ := reader.Read()
	fmt.Println("initial len:", len(*guard.Value()))
	guard.Release()

	// add some values on the back buffer, then publish them
	*writer.BackMut() = append(*writer.BackMut(), "foo", "bar", "foobar")
	writer.Swap()

	guard, _ = reader.Read()
	fmt.Println("after swap:", *guard.Value())
	guard.Release()

	// and repeat ...

	// Output:
	// initial len: 0
	// after swap: [foo bar foobar]
}
