package constants_test

import (
	"fmt"

	"github.com/agentstation/assetmap/pkg/constants"
)

// Example shows the defaults a run falls back to.
func Example() {
	fmt.Println(constants.DefaultMasterFile)
	fmt.Println(constants.DefaultOutputFile)
	fmt.Printf("%o\n", constants.FilePermissions)

	// Output:
	// Inventory.csv
	// Final_Inventory_Complete.csv
	// 644
}
